package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrListAllParcelsQueryIsNotConstructed = errors.New(
	"ListAllParcelsQuery must be created via NewListAllParcelsQuery constructor",
)

// ListAllParcelsQuery is the admin view over every parcel. Empty strings and a
// nil createdOn mean "no filter".
//
// Example:
//
//	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
//	query, err := NewListAllParcelsQuery(admin, "in-transit", "", "", &day)
type ListAllParcelsQuery struct {
	principal user.Principal
	filter    ParcelFilter

	guard guard.ConstructorGuard
}

func NewListAllParcelsQuery(
	principal user.Principal,
	status, senderID, receiverID string,
	createdOn *time.Time,
) (ListAllParcelsQuery, error) {
	s, errStatus := parseStatusFilter(status)
	sender, errSender := parseIDFilter(senderID)
	if errSender != nil {
		errSender = errs.NewValueIsInvalidErrorWithCause("sender", errSender)
	}
	receiver, errReceiver := parseIDFilter(receiverID)
	if errReceiver != nil {
		errReceiver = errs.NewValueIsInvalidErrorWithCause("receiver", errReceiver)
	}
	if err := errors.Join(principal.Validate(), errStatus, errSender, errReceiver); err != nil {
		return ListAllParcelsQuery{}, err
	}

	return ListAllParcelsQuery{
		principal: principal,
		filter:    ParcelFilter{Status: s, Sender: sender, Receiver: receiver, CreatedOn: createdOn},
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListAllParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListAllParcelsQueryIsNotConstructed)
}

func (q ListAllParcelsQuery) Principal() user.Principal { return q.principal }
func (q ListAllParcelsQuery) Filter() ParcelFilter      { return q.filter }
