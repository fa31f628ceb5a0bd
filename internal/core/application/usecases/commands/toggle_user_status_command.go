package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrToggleUserStatusCommandIsNotConstructed = errors.New(
	"ToggleUserStatusCommand must be created via NewToggleUserStatusCommand constructor",
)

// ToggleUserStatusCommand blocks an active user or unblocks a blocked one.
type ToggleUserStatusCommand struct {
	principal user.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewToggleUserStatusCommand(principal user.Principal, userID kernel.UUID) (ToggleUserStatusCommand, error) {
	if err := errors.Join(principal.Validate(), userID.Validate()); err != nil {
		return ToggleUserStatusCommand{}, err
	}

	return ToggleUserStatusCommand{
		principal: principal,
		userID:    userID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleUserStatusCommand) Validate() error {
	return c.guard.Validate(ErrToggleUserStatusCommandIsNotConstructed)
}

func (c ToggleUserStatusCommand) Principal() user.Principal {
	return c.principal
}

func (c ToggleUserStatusCommand) UserID() kernel.UUID {
	return c.userID
}
