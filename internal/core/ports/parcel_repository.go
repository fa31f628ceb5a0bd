// Package ports defines repository and collaborator interfaces for the parcel
// tracking domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ErrTrackingIDConflict is returned by ParcelRepository.Add when another parcel
// already holds the tracking ID. Callers regenerate the ID and retry in a new
// transaction.
var ErrTrackingIDConflict = errors.New("tracking id already exists")

// ParcelRepository defines the persistence contract for parcel aggregates,
// including their status ledger.
type ParcelRepository interface {
	// Add persists a new parcel and its initial ledger entries.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the parcel row and appends ledger entries not yet stored.
	// Stored ledger rows are never rewritten. Returns errs.ErrVersionIsInvalid
	// when the parcel changed since it was loaded.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel with its full ledger.
	// Returns errs.ErrObjectNotFound when the parcel does not exist.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by its public tracking code.
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)
}
