package service

import (
	"errors"
	"fmt"
)

var (
	ErrHallNotFound        = errors.New("hall not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrSevaNotFound        = errors.New("seva not found")
	ErrGotraNotFound       = errors.New("gotra not found")
	ErrSevaBookingNotFound = errors.New("seva booking not found")
	ErrHallNameTaken       = errors.New("hall with this name already exists")
	ErrHallHasBookings     = errors.New("cannot delete hall with active bookings")
	ErrIllegalDeletion     = errors.New("confirmed bookings must be cancelled before deletion")
)

// ValidationError reports a request field that failed validation.
// Handlers surface it as a 400 with the offending field named.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a time-slot collision with an existing booking.
// Handlers surface it as a 409 carrying the blocking booking's id.
type ConflictError struct {
	BookingID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with existing booking %d for this hall and time slot", e.BookingID)
}

// IllegalTransitionError reports a status change the lifecycle state
// machine forbids.
type IllegalTransitionError struct {
	From, To string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}
