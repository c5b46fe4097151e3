package booking

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a booking attempt ended without committing.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "notFound"
	KindIneligible      ErrorKind = "ineligible"
	KindInvalidWindow   ErrorKind = "invalidWindow"
	KindSlotUnavailable ErrorKind = "slotUnavailable"
	KindDataIntegrity   ErrorKind = "dataIntegrity"
	KindStorageFailure  ErrorKind = "storageFailure"
)

// BookingError is the only error type BookAppointment returns.
type BookingError struct {
	Kind    ErrorKind
	Entity  string // "student" or "mentor" for KindNotFound
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// Is matches any BookingError of the same kind, so callers can write
// errors.Is(err, booking.ErrSlotUnavailable).
func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Kind == e.Kind
}

// ClientError reports whether the failure was caused by the caller's input
// rather than by the store or its data.
func (e *BookingError) ClientError() bool {
	switch e.Kind {
	case KindNotFound, KindIneligible, KindInvalidWindow, KindSlotUnavailable:
		return true
	}
	return false
}

var (
	ErrNotFound        = &BookingError{Kind: KindNotFound}
	ErrIneligible      = &BookingError{Kind: KindIneligible}
	ErrInvalidWindow   = &BookingError{Kind: KindInvalidWindow}
	ErrSlotUnavailable = &BookingError{Kind: KindSlotUnavailable}
	ErrDataIntegrity   = &BookingError{Kind: KindDataIntegrity}
	ErrStorageFailure  = &BookingError{Kind: KindStorageFailure}
)

// KindOf returns the kind of a BookingError anywhere in err's chain.
// Any other error counts as a storage failure.
func KindOf(err error) ErrorKind {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorageFailure
}

func notFound(entity, id string, err error) *BookingError {
	return &BookingError{Kind: KindNotFound, Entity: entity, Message: fmt.Sprintf("%s %s not found", entity, id), Err: err}
}

func invalidWindow(format string, args ...any) *BookingError {
	return &BookingError{Kind: KindInvalidWindow, Message: fmt.Sprintf(format, args...)}
}

func storageFailure(msg string, err error) *BookingError {
	return &BookingError{Kind: KindStorageFailure, Message: msg, Err: err}
}

func dataIntegrity(msg string, err error) *BookingError {
	return &BookingError{Kind: KindDataIntegrity, Message: msg, Err: err}
}
