package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// RegisterUserCommandHandler hashes the password and stores a new active user.
// Returns ports.ErrEmailAlreadyRegistered when the email is taken.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      kernel.Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
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

	userRepo := uow.UserRepository()
	_, err := userRepo.FindByEmail(ctx, cmd.Email())
	switch {
	case err == nil:
		return ports.ErrEmailAlreadyRegistered
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Email(), hash, cmd.Role(), cmd.Profile(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
