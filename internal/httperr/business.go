package httperr

import "errors"

// Kind classifies a business error for transport mapping.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindForbidden         Kind = "forbidden"
	KindInvalidTransition Kind = "invalid_transition"
)

type BusinessError struct {
	Kind   Kind
	Code   string
	Fields map[string]string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness builds a validation error without field details.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code string, fields map[string]string) error {
	return BusinessError{Kind: KindValidation, Code: code, Fields: fields}
}

func Unauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func Forbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func InvalidTransition(code string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
