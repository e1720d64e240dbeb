package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/classroom-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated() *Error {
	return New(http.StatusUnauthorized, "unauthenticated", pkgerrors.ErrUnauthorized)
}

func PermissionDenied(msg string) *Error {
	return New(http.StatusForbidden, "permission_denied", wrap(pkgerrors.ErrPermissionDenied, msg))
}

func InvalidArgument(msg string) *Error {
	return New(http.StatusBadRequest, "invalid_argument", wrap(pkgerrors.ErrInvalidArgument, msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, "not_found", wrap(pkgerrors.ErrNotFound, msg))
}

func ResourceExhausted(msg string) *Error {
	return New(http.StatusTooManyRequests, "resource_exhausted", wrap(pkgerrors.ErrResourceExhausted, msg))
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// From maps err to an *Error. Sentinels from pkg/errors keep their kind;
// anything else becomes a 500 with fallbackCode.
func From(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthenticated", err)
	case errors.Is(err, pkgerrors.ErrPermissionDenied):
		return New(http.StatusForbidden, "permission_denied", err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrResourceExhausted):
		return New(http.StatusTooManyRequests, "resource_exhausted", err)
	default:
		return Internal(fallbackCode, err)
	}
}

func wrap(sentinel error, msg string) error {
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}
