package services

import (
	"errors"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/repositories"
	"safari-backend/internal/utils"
)

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return utils.NowUTC()
}

// storeError turns repository sentinels into domain errors. Domain errors
// raised inside a transaction pass through untouched.
func storeError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return err
	case errors.Is(err, repositories.ErrNotFound):
		return domain.NotFoundError{Resource: resource, Err: err}
	case errors.Is(err, repositories.ErrVersionConflict):
		return domain.ConflictError{Resource: resource, Msg: "modified by another request, retry", Err: err}
	case errors.Is(err, repositories.ErrDuplicate):
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	default:
		return domain.InternalError{Msg: resource + " store failure", Err: err}
	}
}

func isDomainError(err error) bool {
	return domain.IsValidation(err) ||
		domain.IsNotFound(err) ||
		domain.IsConflict(err) ||
		domain.IsInternal(err) ||
		domain.IsCapacityExceeded(err) ||
		domain.IsExpired(err) ||
		domain.IsInvalidTransition(err) ||
		domain.IsUnauthorized(err)
}
