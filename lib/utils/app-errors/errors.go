package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the machine-checkable failure class surfaced to API callers.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindInvalidState     Kind = "INVALID_STATE"
	KindCapacityExceeded Kind = "CAPACITY_EXCEEDED"
	KindAssetUnavailable Kind = "ASSET_UNAVAILABLE"
	KindDuplicateRequest Kind = "DUPLICATE_REQUEST"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf unwraps err and returns its kind, or "" for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
