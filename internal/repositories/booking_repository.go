package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "safari-backend/internal/db"
	"safari-backend/internal/domain/models"
)

const bookingColumns = `id, token, name, phone, email, safari_date, time_slot,
	adults, children, total_seats, payment_amount, payment_done, COALESCE(payment_mode, ''),
	expiry_time, expired, safari_status, gate_in_time, gate_out_time,
	created_at, updated_at, version`

type BookingRepository struct {
	DB Queryer
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b       models.Booking
		mode    string
		status  string
		gateIn  sql.NullTime
		gateOut sql.NullTime
	)
	if err := row.Scan(
		&b.ID, &b.Token, &b.Name, &b.Phone, &b.Email, &b.SafariDate, &b.TimeSlot,
		&b.Adults, &b.Children, &b.TotalSeats, &b.PaymentAmount, &b.PaymentDone, &mode,
		&b.ExpiryTime, &b.Expired, &status, &gateIn, &gateOut,
		&b.CreatedAt, &b.UpdatedAt, &b.Version,
	); err != nil {
		return models.Booking{}, err
	}
	b.PaymentMode = models.PaymentMode(mode)
	b.SafariStatus = models.SafariStatus(status)
	b.GateInTime = intdb.TimePtr(gateIn)
	b.GateOutTime = intdb.TimePtr(gateOut)
	b.ExpiryTime = b.ExpiryTime.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

// SumHeldSeats is the slot ledger's aggregate: paid bookings plus live holds.
func (r BookingRepository) SumHeldSeats(ctx context.Context, date, slot string, now time.Time) (int, error) {
	var held int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_seats), 0)
		FROM bookings
		WHERE safari_date = ? AND time_slot = ?
		  AND (payment_done = 1 OR (expired = 0 AND expiry_time > ?))
	`, date, slot, now.UTC()).Scan(&held)
	if err != nil {
		return 0, fmt.Errorf("sum held seats: %w", err)
	}
	return held, nil
}

func (r BookingRepository) MaxToken(ctx context.Context, date string) (int, error) {
	var max int
	if err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(token), 0) FROM bookings WHERE safari_date = ?`, date).Scan(&max); err != nil {
		return 0, fmt.Errorf("max token: %w", err)
	}
	return max, nil
}

func (r BookingRepository) InsertBooking(ctx context.Context, b *models.Booking) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (
			token, name, phone, email, safari_date, time_slot,
			adults, children, total_seats, payment_amount, payment_done, payment_mode,
			expiry_time, expired, safari_status, gate_in_time, gate_out_time,
			created_at, updated_at, version
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,1)
	`,
		b.Token, b.Name, b.Phone, b.Email, b.SafariDate, b.TimeSlot,
		b.Adults, b.Children, b.TotalSeats, b.PaymentAmount, b.PaymentDone, intdb.NullIfEmpty(string(b.PaymentMode)),
		b.ExpiryTime.UTC(), b.Expired, string(b.SafariStatus), intdb.NullTime(b.GateInTime), intdb.NullTime(b.GateOutTime),
		b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert booking id: %w", err)
	}
	b.ID = id
	b.Version = 1
	return nil
}

func (r BookingRepository) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return b, notFound(err)
	}
	return b, nil
}

func (r BookingRepository) GetBookingByToken(ctx context.Context, date string, token int) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE safari_date = ? AND token = ? LIMIT 1`, date, token)
	b, err := scanBooking(row)
	if err != nil {
		return b, notFound(err)
	}
	return b, nil
}

func (r BookingRepository) UpdateBooking(ctx context.Context, b *models.Booking) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET payment_done = ?, payment_mode = ?, expired = ?, safari_status = ?,
		    gate_in_time = ?, gate_out_time = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		b.PaymentDone, intdb.NullIfEmpty(string(b.PaymentMode)), b.Expired, string(b.SafariStatus),
		intdb.NullTime(b.GateInTime), intdb.NullTime(b.GateOutTime), b.UpdatedAt.UTC(),
		b.ID, b.Version,
	)
	if err != nil {
		return fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	b.Version++
	return nil
}

func (r BookingRepository) ListBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where := []string{}
	args := []any{}
	if f.SafariDate != "" {
		where = append(where, "safari_date = ?")
		args = append(args, f.SafariDate)
	}
	if f.Status != "" {
		where = append(where, "safari_status = ?")
		args = append(args, string(f.Status))
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY safari_date DESC, token ASC`
	return r.queryBookings(ctx, query, args...)
}

func (r BookingRepository) ListStaleHolds(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return r.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE payment_done = 0 AND expired = 0 AND expiry_time <= ?
		ORDER BY id ASC`, now.UTC())
}

func (r BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
