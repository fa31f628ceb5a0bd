package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler moves an in-transit parcel to delivered on
// behalf of its receiver.
type ConfirmDeliveryCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewConfirmDeliveryCommandHandler(uowFactory ParcelUoWFactory, clock kernel.Clock) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle returns errs.ErrForbidden unless the principal is the receiver and
// errs.ErrInvalidTransition unless the parcel is in transit.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
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

	if err = h.policy.CanConfirmDelivery(cmd.Principal(), services.PartiesOf(p)); err != nil {
		return err
	}

	if err = p.ConfirmDelivery(cmd.Principal().ID, h.clock.Now()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
