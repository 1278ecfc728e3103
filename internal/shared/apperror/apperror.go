package apperror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an error for callers. The kind survives wrapping.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindCapacityExceeded   Kind = "CAPACITY_EXCEEDED"
	KindConflict           Kind = "CONFLICT"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindInternal           Kind = "INTERNAL"
)

// Error is the error type returned by every service in the module.
type Error struct {
	Kind    Kind
	Message string
	// Remaining is the number of seats still free, set for KindCapacityExceeded.
	Remaining int
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidTransition(from, action string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s a booking that is %s", action, from),
	}
}

func CapacityExceeded(remaining int) *Error {
	return &Error{
		Kind:      KindCapacityExceeded,
		Message:   fmt.Sprintf("insufficient capacity: only %d seats available", remaining),
		Remaining: remaining,
	}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func StorageUnavailable(err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: "storage unavailable", Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// FromDB translates an error returned by gorm into an *Error.
// The gorm handle must be opened with TranslateError enabled.
func FromDB(err error, entity string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindNotFound, Message: "referenced record does not exist", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: entity + " already exists", Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &Error{Kind: KindInvalidInput, Message: "value out of range for " + entity, Err: err}
	}
	return StorageUnavailable(err)
}

// FromDBDelete is FromDB for deletes, where a foreign key violation means
// the row is still referenced.
func FromDBDelete(err error, entity string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &Error{Kind: KindConflict, Message: entity + " is still referenced", Err: err}
	}
	return FromDB(err, entity)
}

// IsTransient reports whether err is a connection-level failure the
// caller may retry once.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected, admin/crash shutdown
		switch pgErr.Code {
		case "40001", "40P01", "57P01", "57P02", "57P03":
			return true
		}
	}
	return false
}

// HTTPStatus maps a kind onto a response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidTransition, KindCapacityExceeded, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
