// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, access check,
// transaction management, and persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// UserRepoFactory provides access to the user directory within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ParcelUoW manages transactions for parcel-only operations such as
	// status transitions.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// UserUoW manages transactions for user directory operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW spans parcels and users. Parcel creation reads the receiver from the
	// directory and writes the parcel in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   receiver, err := uow.UserRepository().FindByEmailAndRole(ctx, email, user.RoleReceiver)
	//   // ... build the parcel
	//   err = uow.ParcelRepository().Add(ctx, p)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
