package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Queryer is satisfied by *sql.DB and *sql.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore is the server-authoritative store backed by MySQL.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) SQLStore {
	return SQLStore{DB: db}
}

func (s SQLStore) Ping(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("database is not connected")
	}
	return s.DB.PingContext(ctx)
}

// maxTxAttempts bounds how often a unit of work is replayed after InnoDB
// picks it as a deadlock victim or times out its lock wait.
const maxTxAttempts = 3

// InTx runs fn in one transaction. fn may be called again when the previous
// attempt was rolled back by a deadlock (1213) or lock wait timeout (1205).
func (s SQLStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	if s.DB == nil {
		return errors.New("database is not connected")
	}
	var err error
	for attempt := 1; ; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !isRetryableLock(err) || attempt >= maxTxAttempts {
			return err
		}
		log.Printf("[DB] tx_retry attempt=%d err=%v", attempt, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		}
	}
}

func (s SQLStore) runTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newSQLTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type sqlTx struct {
	BookingRepository
	VehicleRepository
	StaffRepository
	q Queryer
}

func newSQLTx(q Queryer) *sqlTx {
	return &sqlTx{
		BookingRepository: BookingRepository{DB: q},
		VehicleRepository: VehicleRepository{DB: q},
		StaffRepository:   StaffRepository{DB: q},
		q:                 q,
	}
}

// LockDate takes an exclusive lock on the date's safari_days row, creating
// the row on first use. The upsert locks exclusively whether or not the row
// exists, so same-date writers queue instead of upgrading shared locks.
func (t *sqlTx) LockDate(ctx context.Context, date string) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO safari_days (safari_date) VALUES (?)
		ON DUPLICATE KEY UPDATE safari_date = safari_date
	`, date)
	if err != nil {
		return fmt.Errorf("lock safari day %s: %w", date, err)
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func isRetryableLock(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1213 || me.Number == 1205)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
