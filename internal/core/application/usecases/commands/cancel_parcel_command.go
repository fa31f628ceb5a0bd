package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand represents a sender cancelling one of their parcels
// before dispatch.
type CancelParcelCommand struct {
	principal user.Principal
	parcelID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a cancel command for parcelID on behalf of principal.
func NewCancelParcelCommand(principal user.Principal, parcelID kernel.UUID) (CancelParcelCommand, error) {
	if err := errors.Join(principal.Validate(), parcelID.Validate()); err != nil {
		return CancelParcelCommand{}, err
	}

	return CancelParcelCommand{
		principal: principal,
		parcelID:  parcelID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

func (c CancelParcelCommand) Principal() user.Principal {
	return c.principal
}

func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
