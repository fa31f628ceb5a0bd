package ports

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// ErrEmailAlreadyRegistered is returned by UserRepository.Add for a taken email.
var ErrEmailAlreadyRegistered = errors.New("email already registered")

// UserRepository is the user directory.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ErrObjectNotFound for an unknown ID.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// FindByEmail returns errs.ErrObjectNotFound when no user has the email.
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)

	// FindByEmailAndRole resolves e.g. the receiver of a new parcel.
	FindByEmailAndRole(ctx context.Context, email user.Email, role user.Role) (*user.User, error)
}
