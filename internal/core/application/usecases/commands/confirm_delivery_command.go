package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a receiver confirming an in-transit parcel arrived.
type ConfirmDeliveryCommand struct {
	principal user.Principal
	parcelID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(principal user.Principal, parcelID kernel.UUID) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(principal.Validate(), parcelID.Validate()); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		principal: principal,
		parcelID:  parcelID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Principal() user.Principal {
	return c.principal
}

func (c ConfirmDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
