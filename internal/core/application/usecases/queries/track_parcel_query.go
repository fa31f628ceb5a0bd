package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery looks a parcel up by its public tracking code. Any
// authenticated principal may track any parcel. The code is kept as given:
// a code that no parcel can hold is simply not found.
type TrackParcelQuery struct {
	principal  user.Principal
	trackingID string

	guard guard.ConstructorGuard
}

func NewTrackParcelQuery(principal user.Principal, trackingID string) (TrackParcelQuery, error) {
	if err := principal.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		principal:  principal,
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

func (q TrackParcelQuery) Principal() user.Principal { return q.principal }
func (q TrackParcelQuery) TrackingID() string        { return q.trackingID }
