package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error kind carrying the HTTP status it maps to.
// Concrete failures wrap one of the sentinel kinds below with fmt.Errorf("%w: ...").
type Error struct {
	Status  int
	Message string
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidInterval     = New(http.StatusBadRequest, "end date must be after start date")
	ErrValidation          = New(http.StatusBadRequest, "validation failed")
	ErrNotFound            = New(http.StatusNotFound, "not found")
	ErrInsufficientBalance = New(http.StatusConflict, "insufficient allowance balance")
	ErrNoCapacity          = New(http.StatusConflict, "no free units for the requested period")
	ErrConflict            = New(http.StatusConflict, "concurrent update conflict, please retry")
	ErrInvalidTransition   = New(http.StatusUnprocessableEntity, "status transition not allowed")
	ErrStorage             = New(http.StatusInternalServerError, "storage failure")
)

// Storage wraps a persistence error so it is reported as StorageFailure
// while keeping the driver error reachable through errors.As.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Kind returns the sentinel kind of err, or nil for errors outside this package.
func Kind(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// StatusOf maps err to an HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	if kind := Kind(err); kind != nil {
		return kind.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage hides internal details of server-side failures.
func PublicMessage(err error) string {
	kind := Kind(err)
	if kind == nil || kind.Status >= http.StatusInternalServerError {
		return ErrStorage.Message
	}
	return err.Error()
}
