package queries

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var ErrListOverdueParcelsQueryIsNotConstructed = errors.New(
	"ListOverdueParcelsQuery must be created via NewListOverdueParcelsQuery constructor",
)

// ListOverdueParcelsQuery finds parcels that should have arrived before the
// day of asOf and are still in a non-terminal status.
type ListOverdueParcelsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewListOverdueParcelsQuery(asOf time.Time) (ListOverdueParcelsQuery, error) {
	if asOf.IsZero() {
		return ListOverdueParcelsQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return ListOverdueParcelsQuery{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOverdueParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueParcelsQueryIsNotConstructed)
}

// OverdueParcel is a parcel past its expected delivery date.
type OverdueParcel struct {
	ID                   kernel.UUID
	TrackingID           string
	Status               parcel.Status
	ExpectedDeliveryDate time.Time
}

type ListOverdueParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListOverdueParcelsQueryHandler(db *gorm.DB) ListOverdueParcelsQueryHandler {
	return ListOverdueParcelsQueryHandler{db: db}
}

// Handle returns overdue parcels, most overdue first.
func (h ListOverdueParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListOverdueParcelsQuery,
) ([]OverdueParcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	open := make([]int, 0)
	for _, s := range parcel.Statuses() {
		if !s.IsTerminal() {
			open = append(open, int(s))
		}
	}
	today := now.With(query.asOf.UTC()).BeginningOfDay()

	var rows []struct {
		ID                   uuid.UUID
		TrackingID           string
		CurrentStatus        int
		ExpectedDeliveryDate time.Time
	}
	err := h.db.WithContext(ctx).
		Table("parcels").
		Select("id, tracking_id, current_status, expected_delivery_date").
		Where("expected_delivery_date < ?", today).
		Where("current_status IN ?", open).
		Order("expected_delivery_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]OverdueParcel, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.UUIDFromBytes(r.ID[:])
		if err != nil {
			return nil, err
		}
		result = append(result, OverdueParcel{
			ID:                   id,
			TrackingID:           r.TrackingID,
			Status:               parcel.Status(r.CurrentStatus),
			ExpectedDeliveryDate: r.ExpectedDeliveryDate.UTC(),
		})
	}

	return result, nil
}
