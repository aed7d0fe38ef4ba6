package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "safari-backend/internal/db"
	"safari-backend/internal/domain/models"
)

const vehicleColumns = `id, vehicle_number, safari_date, capacity, seats_filled,
	COALESCE(driver_name, ''), status, plastic_count_in, plastic_count_out,
	gate_in_time, gate_out_time, created_at, updated_at, version`

type VehicleRepository struct {
	DB Queryer
}

func scanVehicle(row rowScanner) (models.VehicleAssignment, error) {
	var (
		v          models.VehicleAssignment
		status     string
		plasticIn  sql.NullInt64
		plasticOut sql.NullInt64
		gateIn     sql.NullTime
		gateOut    sql.NullTime
	)
	if err := row.Scan(
		&v.ID, &v.VehicleNumber, &v.SafariDate, &v.Capacity, &v.SeatsFilled,
		&v.DriverName, &status, &plasticIn, &plasticOut,
		&gateIn, &gateOut, &v.CreatedAt, &v.UpdatedAt, &v.Version,
	); err != nil {
		return models.VehicleAssignment{}, err
	}
	v.Status = models.VehicleStatus(status)
	v.PlasticCountIn = intdb.IntPtr(plasticIn)
	v.PlasticCountOut = intdb.IntPtr(plasticOut)
	v.GateInTime = intdb.TimePtr(gateIn)
	v.GateOutTime = intdb.TimePtr(gateOut)
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	v.Passengers = []models.Passenger{}
	return v, nil
}

// ListVehicles returns the date's manifests in creation order with passengers.
func (r VehicleRepository) ListVehicles(ctx context.Context, date string) ([]models.VehicleAssignment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicle_assignments
		WHERE safari_date = ? ORDER BY created_at ASC, id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	out := []models.VehicleAssignment{}
	byID := map[int64]int{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		byID[v.ID] = len(out)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	if len(out) == 0 {
		return out, nil
	}

	prow, err := r.DB.QueryContext(ctx, `SELECT vehicle_id, sub_token, booking_id, name, phone
		FROM vehicle_passengers WHERE safari_date = ? ORDER BY vehicle_id ASC, seq ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list passengers: %w", err)
	}
	defer prow.Close()
	for prow.Next() {
		var (
			vehicleID int64
			p         models.Passenger
		)
		if err := prow.Scan(&vehicleID, &p.SubToken, &p.BookingID, &p.Name, &p.Phone); err != nil {
			return nil, fmt.Errorf("scan passenger: %w", err)
		}
		if i, ok := byID[vehicleID]; ok {
			out[i].Passengers = append(out[i].Passengers, p)
		}
	}
	return out, prow.Err()
}

func (r VehicleRepository) GetVehicle(ctx context.Context, id int64) (models.VehicleAssignment, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicle_assignments WHERE id = ? LIMIT 1`, id))
	if err != nil {
		return v, notFound(err)
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT sub_token, booking_id, name, phone
		FROM vehicle_passengers WHERE vehicle_id = ? ORDER BY seq ASC`, id)
	if err != nil {
		return v, fmt.Errorf("list passengers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.SubToken, &p.BookingID, &p.Name, &p.Phone); err != nil {
			return v, fmt.Errorf("scan passenger: %w", err)
		}
		v.Passengers = append(v.Passengers, p)
	}
	return v, rows.Err()
}

func (r VehicleRepository) InsertVehicle(ctx context.Context, v *models.VehicleAssignment) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicle_assignments (
			vehicle_number, safari_date, capacity, seats_filled, driver_name, status,
			plastic_count_in, plastic_count_out, gate_in_time, gate_out_time,
			created_at, updated_at, version
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,1)
	`,
		v.VehicleNumber, v.SafariDate, v.Capacity, v.SeatsFilled, intdb.NullIfEmpty(v.DriverName), string(v.Status),
		intdb.NullInt(v.PlasticCountIn), intdb.NullInt(v.PlasticCountOut), intdb.NullTime(v.GateInTime), intdb.NullTime(v.GateOutTime),
		v.CreatedAt.UTC(), v.UpdatedAt.UTC(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert vehicle id: %w", err)
	}
	v.ID = id
	v.Version = 1
	return nil
}

func (r VehicleRepository) UpdateVehicle(ctx context.Context, v *models.VehicleAssignment) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicle_assignments
		SET seats_filled = ?, driver_name = ?, status = ?,
		    plastic_count_in = ?, plastic_count_out = ?, gate_in_time = ?, gate_out_time = ?,
		    updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		v.SeatsFilled, intdb.NullIfEmpty(v.DriverName), string(v.Status),
		intdb.NullInt(v.PlasticCountIn), intdb.NullInt(v.PlasticCountOut), intdb.NullTime(v.GateInTime), intdb.NullTime(v.GateOutTime),
		v.UpdatedAt.UTC(), v.ID, v.Version,
	)
	if err != nil {
		return fmt.Errorf("update vehicle %d: %w", v.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update vehicle %d: %w", v.ID, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	v.Version++
	return nil
}

func (r VehicleRepository) AddPassengers(ctx context.Context, vehicleID int64, date string, firstSeq int, ps []models.Passenger) error {
	for i, p := range ps {
		_, err := r.DB.ExecContext(ctx, `
			INSERT INTO vehicle_passengers (vehicle_id, safari_date, seq, sub_token, booking_id, name, phone)
			VALUES (?,?,?,?,?,?,?)
		`, vehicleID, date, firstSeq+i, p.SubToken, p.BookingID, p.Name, p.Phone)
		if err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert passenger %s: %w", p.SubToken, err)
		}
	}
	return nil
}
