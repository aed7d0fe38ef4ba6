package services

import (
	"context"
	"fmt"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/metrics"
	"safari-backend/internal/repositories"
	"safari-backend/internal/utils"
)

// Sweeper periodically expires unpaid holds whose expiry time has passed.
// Expired bookings are kept; only their seats are released.
type Sweeper struct {
	Store    repositories.Store
	Interval time.Duration
	Now      func() time.Time
}

func (s Sweeper) interval() time.Duration {
	if s.Interval <= 0 || s.Interval > domain.MaxSweepInterval {
		return domain.MaxSweepInterval
	}
	return s.Interval
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			utils.LogEvent("", "sweeper", "sweep", "error: "+err.Error())
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce expires every lapsed hold and reports how many changed. Each
// booking is expired in its own transaction so a payment racing the sweep
// either wins or sees the expiry.
func (s Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := clock(s.Now)

	var stale []models.Booking
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		stale, err = tx.ListStaleHolds(ctx, now)
		return err
	})
	if err != nil {
		return 0, storeError("booking", err)
	}

	expired := 0
	var firstErr error
	for _, c := range stale {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		changed := false
		err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
			changed = false
			if err := tx.LockDate(ctx, c.SafariDate); err != nil {
				return err
			}
			b, err := tx.GetBooking(ctx, c.ID)
			if err != nil {
				return err
			}
			if !domain.ExpireIfStale(&b, now) {
				return nil
			}
			changed = true
			return tx.UpdateBooking(ctx, &b)
		})
		if err != nil {
			utils.LogEvent("", "sweeper", "expire", fmt.Sprintf("booking_id=%d error: %v", c.ID, err))
			if firstErr == nil {
				firstErr = storeError("booking", err)
			}
			continue
		}
		if changed {
			expired++
		}
	}

	if expired > 0 {
		metrics.AddHoldsExpired(expired)
		utils.LogEvent("", "sweeper", "expire", fmt.Sprintf("expired=%d", expired))
	}
	return expired, firstErr
}
