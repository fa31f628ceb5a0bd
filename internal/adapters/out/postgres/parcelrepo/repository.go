package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the parcel row and its ledger. A tracking ID collision is
// reported as ports.ErrTrackingIDConflict.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		if isTrackingIDConflict(err) {
			return fmt.Errorf("%w: %s", ports.ErrTrackingIDConflict, dto.TrackingID)
		}
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto.StatusLogs).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable parcel columns guarded by the loaded version and
// inserts the ledger entries appended since the parcel was loaded.
// Existing ledger rows are never updated or deleted.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"current_status":         dto.CurrentStatus,
			"is_active":              dto.IsActive,
			"expected_delivery_date": dto.ExpectedDeliveryDate,
			"version":                gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&ParcelDTO{}).Where("id = ?", dto.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause(
			"parcel",
			fmt.Errorf("parcel %s changed since version %d was loaded", aggregate.ID(), dto.Version),
		)
	}

	var stored int64
	if err := db.Model(&StatusLogDTO{}).Where("parcel_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}

	if int(stored) > len(dto.StatusLogs) {
		return errs.NewValueIsInvalidErrorWithCause(
			"statusLogs",
			fmt.Errorf("ledger has %d entries, %d are stored", len(dto.StatusLogs), stored),
		)
	}

	if pending := dto.StatusLogs[stored:]; len(pending) > 0 {
		if err := db.Create(&pending).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID with its ledger in order.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withLedger(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a parcel by its tracking code.
func (r *GormParcelRepository) GetByTrackingID(
	ctx context.Context,
	trackingID parcel.TrackingID,
) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := r.withLedger(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) withLedger(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("StatusLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}

func isTrackingIDConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == TrackingIDIndex
}
