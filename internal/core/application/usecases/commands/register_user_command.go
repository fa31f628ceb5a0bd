package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates an account in the user directory.
type RegisterUserCommand struct {
	userID   kernel.UUID
	email    user.Email
	password string
	role     user.Role
	profile  user.Profile

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID,
	name, email, password, role, phone, address string,
) (RegisterUserCommand, error) {
	parsedEmail, errEmail := user.NewEmail(email)
	parsedRole, errRole := user.ParseRole(role)

	var errPassword error
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errPassword = errs.NewValueIsInvalidErrorWithCause(
			"password",
			fmt.Errorf("must be at least %d characters", MinPasswordLength),
		)
	}

	var errName error
	if strings.TrimSpace(name) == "" {
		errName = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(userID.Validate(), errName, errEmail, errPassword, errRole); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:   userID,
		email:    parsedEmail,
		password: password,
		role:     parsedRole,
		profile:  user.Profile{Name: name, Phone: phone, Address: address},
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Email() user.Email {
	return c.email
}

// Password returns the plain text password. It is hashed by the handler and
// never stored.
func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}
