package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ErrTrackingIDExhausted is returned when every generated tracking ID collided
// with an existing one.
var ErrTrackingIDExhausted = errors.New("could not allocate a unique tracking id")

// CreateParcelCommandHandler creates a parcel in requested status: it resolves
// the receiver by email, prices the shipment, assigns a tracking ID and seeds
// the ledger.
//
// Tracking ID collisions are detected by the store. Each retry runs in a new
// transaction because the failed insert aborts the current one.
type CreateParcelCommandHandler struct {
	uowFactory  UoWFactory
	generator   parcel.TrackingIDGenerator
	clock       kernel.Clock
	maxAttempts int
	policy      services.AccessPolicy
}

// NewCreateParcelCommandHandler creates a handler for parcel creation.
// maxAttempts below 1 is treated as 1.
func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	generator parcel.TrackingIDGenerator,
	clock kernel.Clock,
	maxAttempts int,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		clock:       clock,
		maxAttempts: max(maxAttempts, 1),
		policy:      services.NewAccessPolicy(),
	}
}

// Handle processes the parcel creation command.
// Returns errs.ErrForbidden for non-senders and errs.ErrObjectNotFound when no
// receiver is registered with the email.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanCreate(cmd.Principal()); err != nil {
		return err
	}

	createdAt := h.clock.Now()
	for range h.maxAttempts {
		err := h.create(ctx, cmd, createdAt)
		if errors.Is(err, ports.ErrTrackingIDConflict) {
			continue
		}
		return err
	}

	return fmt.Errorf("%w: %d attempts", ErrTrackingIDExhausted, h.maxAttempts)
}

func (h CreateParcelCommandHandler) create(ctx context.Context, cmd CreateParcelCommand, createdAt time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	receiver, err := uow.UserRepository().FindByEmailAndRole(ctx, cmd.ReceiverEmail(), user.RoleReceiver)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotFoundErrorWithCause("receiver", cmd.ReceiverEmail().String(), err)
	}
	if err != nil {
		return err
	}

	trackingID, err := h.generator.Generate(createdAt)
	if err != nil {
		return err
	}

	p, err := parcel.NewParcel(
		cmd.ParcelID(),
		trackingID,
		cmd.Principal().ID,
		receiver.ID(),
		cmd.Shipment(),
		createdAt,
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
