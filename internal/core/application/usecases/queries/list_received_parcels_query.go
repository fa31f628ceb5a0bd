package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrListReceivedParcelsQueryIsNotConstructed = errors.New(
	"ListReceivedParcelsQuery must be created via NewListReceivedParcelsQuery constructor",
)

// ListReceivedParcelsQuery lists the parcels addressed to a receiver.
type ListReceivedParcelsQuery struct {
	principal user.Principal
	filter    ParcelFilter

	guard guard.ConstructorGuard
}

func NewListReceivedParcelsQuery(principal user.Principal, status string) (ListReceivedParcelsQuery, error) {
	s, errStatus := parseStatusFilter(status)
	if err := errors.Join(principal.Validate(), errStatus); err != nil {
		return ListReceivedParcelsQuery{}, err
	}

	id := principal.ID
	return ListReceivedParcelsQuery{
		principal: principal,
		filter:    ParcelFilter{Status: s, Receiver: &id},
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListReceivedParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListReceivedParcelsQueryIsNotConstructed)
}

func (q ListReceivedParcelsQuery) Principal() user.Principal { return q.principal }
func (q ListReceivedParcelsQuery) Filter() ParcelFilter      { return q.filter }
