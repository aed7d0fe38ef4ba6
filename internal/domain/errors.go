package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// CapacityExceededError rejects a hold that does not fit in its slot.
type CapacityExceededError struct {
	Slot      string
	Requested int
	Remaining int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("not enough seats available in %s: requested %d, only %d remaining", e.Slot, e.Requested, e.Remaining)
}

// ExpiredError is returned when acting on a hold that has lapsed.
type ExpiredError struct {
	BookingID int64
}

func (e ExpiredError) Error() string {
	return fmt.Sprintf("booking %d has expired", e.BookingID)
}

// InvalidTransitionError reports a state machine violation.
type InvalidTransitionError struct {
	Resource string
	From     string
	To       string
}

func (e InvalidTransitionError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("cannot move from %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("%s cannot move from %s to %s", e.Resource, e.From, e.To)
}

// UnauthorizedError rejects bad staff credentials or tokens.
type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg == "" {
		return "unauthorized"
	}
	return e.Msg
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsExpired(err error) bool {
	var target ExpiredError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}
