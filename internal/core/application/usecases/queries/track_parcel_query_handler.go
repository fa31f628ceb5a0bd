package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type TrackParcelQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle returns the populated parcel holding the tracking code.
func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}
	if err := h.policy.CanTrackPublic(query.Principal()); err != nil {
		return ParcelView{}, err
	}

	code, err := parcel.TrackingIDFromString(query.TrackingID())
	if err != nil {
		return ParcelView{}, errs.NewObjectNotFoundErrorWithCause("trackingId", query.TrackingID(), err)
	}

	views, err := findParcelViews(ctx, h.db, parcelViews(ctx, h.db).Where("p.tracking_id = ?", code.String()))
	if err != nil {
		return ParcelView{}, err
	}
	if len(views) == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("trackingId", code.String())
	}

	return views[0], nil
}
