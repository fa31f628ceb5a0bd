package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler serves the three parcel lists. Each list is ordered
// newest first and carries the full ledger of every parcel.
//
// Example:
//
//	handler := NewListParcelsQueryHandler(db)
//	query, _ := NewListSentParcelsQuery(principal, "")
//	parcels, err := handler.HandleSent(ctx, query)
type ListParcelsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// HandleSent lists parcels created by the principal. Requires the sender role.
func (h ListParcelsQueryHandler) HandleSent(ctx context.Context, query ListSentParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListSent(query.Principal()); err != nil {
		return nil, err
	}
	return h.list(ctx, query.Filter())
}

// HandleReceived lists parcels addressed to the principal. Requires the receiver role.
func (h ListParcelsQueryHandler) HandleReceived(
	ctx context.Context,
	query ListReceivedParcelsQuery,
) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListReceived(query.Principal()); err != nil {
		return nil, err
	}
	return h.list(ctx, query.Filter())
}

// HandleAll lists every parcel matching the filter. Requires the admin role.
func (h ListParcelsQueryHandler) HandleAll(ctx context.Context, query ListAllParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListAll(query.Principal()); err != nil {
		return nil, err
	}
	return h.list(ctx, query.Filter())
}

func (h ListParcelsQueryHandler) list(ctx context.Context, filter ParcelFilter) ([]ParcelView, error) {
	return findParcelViews(ctx, h.db, filter.apply(parcelViews(ctx, h.db)))
}
