package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// resolveMySQLDSN reads MYSQL_URL or DATABASE_URL first and falls back to
// the DB_* variables. Times are always read and written in UTC.
func resolveMySQLDSN() string {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" && !strings.HasPrefix(raw, "mysql://") {
		cfg, err := mysql.ParseDSN(raw)
		if err != nil {
			log.Printf("warning: cannot parse MYSQL_URL as a DSN: %v", err)
			return raw
		}
		applyDSNDefaults(cfg)
		return cfg.FormatDSN()
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASS")
	cfg.Addr = envOrDefault("DB_HOST", "127.0.0.1") + ":" + envOrDefault("DB_PORT", "3306")
	cfg.DBName = envOrDefault("DB_NAME", "safari")

	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			log.Printf("warning: cannot parse MYSQL_URL: %v", err)
		} else {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
			port := u.Port()
			if port == "" {
				port = "3306"
			}
			cfg.Addr = u.Hostname() + ":" + port
			if name := strings.TrimPrefix(u.Path, "/"); name != "" {
				cfg.DBName = name
			}
		}
	}

	cfg.Params = map[string]string{"charset": "utf8mb4"}
	applyDSNDefaults(cfg)
	return cfg.FormatDSN()
}

// applyDSNDefaults forces UTC time parsing and fills unset timeouts.
func applyDSNDefaults(cfg *mysql.Config) {
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
}

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB(dsn string) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	DB = db
	log.Println("connected to MySQL")
	return DB, nil
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
