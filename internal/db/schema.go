package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

type tableDDL struct {
	name string
	ddl  string
}

var schema = []tableDDL{
	{"safari_days", `
CREATE TABLE IF NOT EXISTS safari_days (
	safari_date VARCHAR(10) NOT NULL PRIMARY KEY,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	token INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	email VARCHAR(255) NOT NULL,
	safari_date VARCHAR(10) NOT NULL,
	time_slot VARCHAR(32) NOT NULL,
	adults INT NOT NULL DEFAULT 0,
	children INT NOT NULL DEFAULT 0,
	total_seats INT NOT NULL,
	payment_amount BIGINT NOT NULL DEFAULT 0,
	payment_done TINYINT(1) NOT NULL DEFAULT 0,
	payment_mode VARCHAR(16) NULL,
	expiry_time DATETIME(3) NOT NULL,
	expired TINYINT(1) NOT NULL DEFAULT 0,
	safari_status VARCHAR(16) NOT NULL,
	gate_in_time DATETIME(3) NULL,
	gate_out_time DATETIME(3) NULL,
	version INT NOT NULL DEFAULT 1,
	created_at DATETIME(3) NOT NULL,
	updated_at DATETIME(3) NOT NULL,
	UNIQUE KEY uniq_date_token (safari_date, token),
	KEY idx_date_slot (safari_date, time_slot),
	KEY idx_hold_expiry (payment_done, expired, expiry_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"vehicle_assignments", `
CREATE TABLE IF NOT EXISTS vehicle_assignments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_number INT NOT NULL,
	safari_date VARCHAR(10) NOT NULL,
	capacity INT NOT NULL,
	seats_filled INT NOT NULL DEFAULT 0,
	driver_name VARCHAR(255) NULL,
	status VARCHAR(16) NOT NULL,
	plastic_count_in INT NULL,
	plastic_count_out INT NULL,
	gate_in_time DATETIME(3) NULL,
	gate_out_time DATETIME(3) NULL,
	version INT NOT NULL DEFAULT 1,
	created_at DATETIME(3) NOT NULL,
	updated_at DATETIME(3) NOT NULL,
	UNIQUE KEY uniq_vehicle_date (vehicle_number, safari_date),
	KEY idx_date (safari_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"vehicle_passengers", `
CREATE TABLE IF NOT EXISTS vehicle_passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_id BIGINT NOT NULL,
	safari_date VARCHAR(10) NOT NULL,
	seq INT NOT NULL,
	sub_token VARCHAR(32) NOT NULL,
	booking_id BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	UNIQUE KEY uniq_date_sub_token (safari_date, sub_token),
	KEY idx_vehicle (vehicle_id, seq),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"staff_users", `
CREATE TABLE IF NOT EXISTS staff_users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	name VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
}

// EnsureSchema creates any missing table. Existing tables are left as they are.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database is not connected")
	}
	for _, t := range schema {
		if HasTable(ctx, db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[SCHEMA] created table %s", t.name)
	}
	return nil
}
