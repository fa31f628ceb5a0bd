package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status is the delivery state of a parcel.
//
// Transitions enforced for non-admin callers:
//
//	requested ──┬──> cancelled          (sender)
//	approved  ──┘
//	in-transit ────> delivered          (receiver)
//
// Every other move (requested -> approved -> dispatched -> in-transit,
// anything -> returned) only happens through the admin override.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status of every parcel.
	StatusRequested

	StatusApproved
	StatusDispatched
	StatusInTransit

	// StatusDelivered is terminal.
	StatusDelivered

	// StatusCancelled is terminal.
	StatusCancelled

	// StatusReturned is terminal.
	StatusReturned
)

var statusNames = map[Status]string{
	StatusRequested:  "requested",
	StatusApproved:   "approved",
	StatusDispatched: "dispatched",
	StatusInTransit:  "in-transit",
	StatusDelivered:  "delivered",
	StatusCancelled:  "cancelled",
	StatusReturned:   "returned",
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusRequested,
		StatusApproved,
		StatusDispatched,
		StatusInTransit,
		StatusDelivered,
		StatusCancelled,
		StatusReturned,
	}
}

// ParseStatus converts the wire form (e.g. "in-transit") to a Status. Only the
// exact wire names are accepted.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no lifecycle transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

// ValidateCancel checks that a sender may still cancel from s.
func (s Status) ValidateCancel() error {
	switch s {
	case StatusRequested, StatusApproved:
		return nil
	case StatusCancelled:
		return errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(), "parcel is already cancelled")
	case StatusReturned:
		return errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(), "cannot cancel returned parcel")
	default:
		return errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(), "cannot cancel dispatched parcel")
	}
}

// Cancel returns StatusCancelled when cancelling from s is allowed.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return StatusUnknown, err
	}
	return StatusCancelled, nil
}

// ValidateConfirmDelivery checks that s is in-transit.
func (s Status) ValidateConfirmDelivery() error {
	if s != StatusInTransit {
		return errs.NewInvalidTransitionError(
			s.String(),
			StatusDelivered.String(),
			"parcel must be in transit to confirm delivery",
		)
	}
	return nil
}

// ConfirmDelivery returns StatusDelivered when s is in-transit.
func (s Status) ConfirmDelivery() (Status, error) {
	if err := s.ValidateConfirmDelivery(); err != nil {
		return StatusUnknown, err
	}
	return StatusDelivered, nil
}
