package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// SetParcelStatusCommandHandler applies the admin override: it records the
// requested status whatever the current one is, attributed to the admin.
type SetParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewSetParcelStatusCommandHandler(uowFactory ParcelUoWFactory, clock kernel.Clock) SetParcelStatusCommandHandler {
	return SetParcelStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle checks the admin role before loading the parcel.
func (h SetParcelStatusCommandHandler) Handle(ctx context.Context, cmd SetParcelStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanAdminOverride(cmd.Principal()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	err = p.ForceSetStatus(cmd.Principal().ID, cmd.Status(), h.clock.Now(), cmd.Location(), cmd.Note())
	if err != nil {
		return err
	}

	if eta := cmd.ExpectedDeliveryDate(); eta != nil {
		if err = p.SetExpectedDeliveryDate(*eta); err != nil {
			return err
		}
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
