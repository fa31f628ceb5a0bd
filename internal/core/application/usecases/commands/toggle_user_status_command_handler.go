package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// ToggleUserStatusResult reports the user's state after the toggle.
type ToggleUserStatusResult struct {
	ID       kernel.UUID
	Name     string
	IsActive bool
}

// ToggleUserStatusCommandHandler flips a user's active flag. Admin only.
type ToggleUserStatusCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.AccessPolicy
}

func NewToggleUserStatusCommandHandler(uowFactory UserUoWFactory) ToggleUserStatusCommandHandler {
	return ToggleUserStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h ToggleUserStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ToggleUserStatusCommand,
) (ToggleUserStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ToggleUserStatusResult{}, err
	}

	if err := h.policy.CanManageUsers(cmd.Principal()); err != nil {
		return ToggleUserStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ToggleUserStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return ToggleUserStatusResult{}, err
	}

	active := u.ToggleActive()

	if err = userRepo.Update(ctx, u); err != nil {
		return ToggleUserStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ToggleUserStatusResult{}, err
	}

	return ToggleUserStatusResult{ID: u.ID(), Name: u.Name(), IsActive: active}, nil
}
