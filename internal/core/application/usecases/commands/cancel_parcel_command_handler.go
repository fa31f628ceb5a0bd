package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler moves a requested or approved parcel to cancelled.
//
// Example:
//
//	handler := NewCancelParcelCommandHandler(uowFactory, kernel.SystemClock{})
//	cmd, _ := NewCancelParcelCommand(principal, parcelID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, errs.ErrForbidden):
//	    // not the sender
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // already dispatched, cancelled or returned
//	}
type CancelParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

// NewCancelParcelCommandHandler creates a handler for parcel cancellation.
func NewCancelParcelCommandHandler(uowFactory ParcelUoWFactory, clock kernel.Clock) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle loads the parcel, checks the sender and status, appends a cancelled
// entry and persists the parcel in one transaction.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) error {
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

	if err = h.policy.CanCancel(cmd.Principal(), services.PartiesOf(p)); err != nil {
		return err
	}

	if err = p.Cancel(cmd.Principal().ID, h.clock.Now()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
