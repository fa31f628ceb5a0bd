package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrLoginQueryIsNotConstructed = errors.New(
	"LoginQuery must be created via NewLoginQuery constructor",
)

// LoginQuery exchanges credentials for a bearer token.
type LoginQuery struct {
	email    user.Email
	password string

	guard guard.ConstructorGuard
}

func NewLoginQuery(email, password string) (LoginQuery, error) {
	e, errEmail := user.NewEmail(email)
	var errPassword error
	if strings.TrimSpace(password) == "" {
		errPassword = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(errEmail, errPassword); err != nil {
		return LoginQuery{}, err
	}

	return LoginQuery{
		email:    e,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q LoginQuery) Validate() error {
	return q.guard.Validate(ErrLoginQueryIsNotConstructed)
}

func (q LoginQuery) Email() user.Email { return q.email }
func (q LoginQuery) Password() string  { return q.password }
