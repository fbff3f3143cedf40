package domain

import "errors"

// Error kinds. Specific errors wrap one of these so callers can match with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrSetup         = errors.New("setup error")
	ErrAuthorization = errors.New("authorization error")
	ErrConflict      = errors.New("version conflict")
	ErrReference     = errors.New("unknown card reference")
	ErrRule          = errors.New("rule violation")
)

// Kind names used on the wire.
const (
	KindValidation    = "validation"
	KindSetup         = "setup"
	KindAuthorization = "authorization"
	KindConflict      = "conflict"
	KindReference     = "reference"
	KindRule          = "rule"
	KindInternal      = "internal"
)

// KindOf returns the stable kind name of err, or KindInternal for anything unclassified.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrSetup):
		return KindSetup
	case errors.Is(err, ErrAuthorization):
		return KindAuthorization
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrReference):
		return KindReference
	case errors.Is(err, ErrRule):
		return KindRule
	default:
		return KindInternal
	}
}
