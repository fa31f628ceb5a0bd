package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrListSentParcelsQueryIsNotConstructed = errors.New(
	"ListSentParcelsQuery must be created via NewListSentParcelsQuery constructor",
)

// ListSentParcelsQuery lists the parcels a sender created, optionally by status.
type ListSentParcelsQuery struct {
	principal user.Principal
	filter    ParcelFilter

	guard guard.ConstructorGuard
}

// NewListSentParcelsQuery accepts an empty status for "any status".
func NewListSentParcelsQuery(principal user.Principal, status string) (ListSentParcelsQuery, error) {
	s, errStatus := parseStatusFilter(status)
	if err := errors.Join(principal.Validate(), errStatus); err != nil {
		return ListSentParcelsQuery{}, err
	}

	id := principal.ID
	return ListSentParcelsQuery{
		principal: principal,
		filter:    ParcelFilter{Status: s, Sender: &id},
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListSentParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListSentParcelsQueryIsNotConstructed)
}

func (q ListSentParcelsQuery) Principal() user.Principal { return q.principal }
func (q ListSentParcelsQuery) Filter() ParcelFilter      { return q.filter }
