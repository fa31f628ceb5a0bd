package user

import (
	"strings"

	"parceltrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Email is a normalized (trimmed, lower-cased) e-mail address. It is the
// lookup key of the user directory.
type Email struct {
	value string
}

// NewEmail validates and normalizes s.
func NewEmail(s string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if err := validate.Var(normalized, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return Email{value: normalized}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was never constructed.
func (e Email) IsZero() bool {
	return e.value == ""
}
