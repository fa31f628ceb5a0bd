package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery retrieves one parcel for a principal allowed to see its detail:
// an admin, its sender or its receiver.
//
// Example:
//
//	query, err := NewGetParcelQuery(principal, parcelID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetParcelQuery struct {
	principal user.Principal
	parcelID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(principal user.Principal, parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := errors.Join(principal.Validate(), parcelID.Validate()); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		principal: principal,
		parcelID:  parcelID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) Principal() user.Principal { return q.principal }
func (q GetParcelQuery) ParcelID() kernel.UUID     { return q.parcelID }
