package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler loads a populated parcel and applies the detail
// visibility rule.
type GetParcelQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle returns errs.ErrObjectNotFound for an unknown parcel and
// errs.ErrForbidden when the principal is not a party and not an admin.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	views, err := findParcelViews(ctx, h.db,
		parcelViews(ctx, h.db).Where("p.id = ?", query.ParcelID().Bytes()))
	if err != nil {
		return ParcelView{}, err
	}
	if len(views) == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
	}

	view := views[0]
	if err = h.policy.CanViewDetail(query.Principal(), view.Parties()); err != nil {
		return ParcelView{}, err
	}

	return view, nil
}
