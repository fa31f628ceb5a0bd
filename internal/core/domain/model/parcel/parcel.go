package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned by Validate for a Parcel built as a literal.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

// Parcel is the aggregate root of the lifecycle. It owns its status ledger and
// is the only place where the ledger grows.
//
// Invariants:
//   - the tracking ID is assigned at construction and never changes
//   - the ledger is never empty and Status() equals the last entry's status
//   - fee is derived from weight and type and is non-negative
type Parcel struct {
	id                   kernel.UUID
	trackingID           TrackingID
	sender               kernel.UUID
	receiver             kernel.UUID
	shipment             Shipment
	fee                  Fee
	ledger               StatusLedger
	isActive             bool
	createdAt            time.Time
	expectedDeliveryDate *time.Time

	// version is the persisted revision, used for optimistic concurrency.
	version int

	guard guard.ConstructorGuard
}

// NewParcel creates a parcel in requested status. The fee is computed from the
// shipment and the ledger is seeded with a requested entry by the sender.
//
// Example:
//
//	weight, _ := parcel.NewWeight(1.0)
//	kind, _ := parcel.NewType("fragile")
//	trackingID, _ := generator.Generate(now)
//	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, senderID, receiverID, parcel.Shipment{
//	    SenderAddress:   "1 Main St",
//	    ReceiverAddress: "2 Side St",
//	    Type:            kind,
//	    Weight:          weight,
//	    Description:     "glassware",
//	}, now)
//	// p.Fee() == 90, p.Status() == parcel.StatusRequested
func NewParcel(
	id kernel.UUID,
	trackingID TrackingID,
	sender, receiver kernel.UUID,
	shipment Shipment,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		isActive:  true,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setParties(sender, receiver),
		p.setShipment(shipment),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	p.fee = CalculateFee(shipment.Weight, shipment.Type)

	if err := p.appendStatus(StatusRequested, sender, createdAt, "", ""); err != nil {
		return nil, err
	}

	return p, nil
}

// Snapshot carries the persisted state of a parcel for RestoreParcel.
type Snapshot struct {
	ID                   kernel.UUID
	TrackingID           TrackingID
	Sender               kernel.UUID
	Receiver             kernel.UUID
	Shipment             Shipment
	Fee                  Fee
	StatusLogs           []StatusLogEntry
	IsActive             bool
	CreatedAt            time.Time
	ExpectedDeliveryDate *time.Time
	Version              int
}

// RestoreParcel rebuilds a parcel loaded from storage. The stored fee is kept
// as charged even if the fee model changed since.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{
		isActive:             s.IsActive,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		version:              s.Version,
		guard:                guard.NewConstructorGuard(),
	}

	var errFee error
	if s.Fee < 0 {
		errFee = errs.NewValueIsInvalidErrorWithCause("fee", fmt.Errorf("%d is negative", s.Fee))
	}
	var errLedger error
	if len(s.StatusLogs) == 0 {
		errLedger = ErrLedgerIsEmpty
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setTrackingID(s.TrackingID),
		p.setParties(s.Sender, s.Receiver),
		p.setShipment(s.Shipment),
		p.setCreatedAt(s.CreatedAt),
		errFee,
		errLedger,
	); err != nil {
		return nil, err
	}

	ledger, err := RestoreStatusLedger(s.StatusLogs)
	if err != nil {
		return nil, err
	}
	p.ledger = ledger
	p.fee = s.Fee

	return p, nil
}

// Validate ensures the parcel was built through a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares parcels by ID.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID           { return p.id }
func (p *Parcel) TrackingID() TrackingID    { return p.trackingID }
func (p *Parcel) Sender() kernel.UUID       { return p.sender }
func (p *Parcel) Receiver() kernel.UUID     { return p.receiver }
func (p *Parcel) Shipment() Shipment        { return p.shipment }
func (p *Parcel) Fee() Fee                  { return p.fee }
func (p *Parcel) IsActive() bool            { return p.isActive }
func (p *Parcel) CreatedAt() time.Time      { return p.createdAt }
func (p *Parcel) Version() int              { return p.version }
func (p *Parcel) History() []StatusLogEntry { return p.ledger.History() }

// ExpectedDeliveryDate returns nil when no date was set.
func (p *Parcel) ExpectedDeliveryDate() *time.Time {
	if p.expectedDeliveryDate == nil {
		return nil
	}
	d := *p.expectedDeliveryDate
	return &d
}

// Status returns the status of the last ledger entry.
func (p *Parcel) Status() Status {
	last, ok := p.ledger.Last()
	if !ok {
		return StatusUnknown
	}
	return last.Status()
}

// Cancel moves the parcel to cancelled on behalf of actor. Only requested and
// approved parcels can be cancelled.
func (p *Parcel) Cancel(actor kernel.UUID, at time.Time) error {
	next, err := p.Status().Cancel()
	if err != nil {
		return err
	}
	return p.appendStatus(next, actor, at, "", "")
}

// ConfirmDelivery moves an in-transit parcel to delivered on behalf of actor.
func (p *Parcel) ConfirmDelivery(actor kernel.UUID, at time.Time) error {
	next, err := p.Status().ConfirmDelivery()
	if err != nil {
		return err
	}
	return p.appendStatus(next, actor, at, "", "")
}

// ForceSetStatus records status without checking it against the current one.
// This is the admin override; it only rejects statuses outside the fixed set.
func (p *Parcel) ForceSetStatus(actor kernel.UUID, status Status, at time.Time, location, note string) error {
	return p.appendStatus(status, actor, at, location, note)
}

// SetExpectedDeliveryDate records when the parcel should arrive.
func (p *Parcel) SetExpectedDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("expectedDeliveryDate")
	}
	d := date.UTC()
	p.expectedDeliveryDate = &d
	return nil
}

func (p *Parcel) appendStatus(status Status, actor kernel.UUID, at time.Time, location, note string) error {
	entry, err := NewStatusLogEntry(status, actor, at, location, note)
	if err != nil {
		return err
	}
	return p.ledger.Append(entry)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(trackingID TrackingID) error {
	if trackingID.IsZero() {
		return errs.NewValueIsRequiredError("trackingId")
	}
	p.trackingID = trackingID
	return nil
}

func (p *Parcel) setParties(sender, receiver kernel.UUID) error {
	if err := errors.Join(sender.Validate(), receiver.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sender and receiver", err)
	}
	p.sender = sender
	p.receiver = receiver
	return nil
}

func (p *Parcel) setShipment(s Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.SenderAddress = strings.TrimSpace(s.SenderAddress)
	s.ReceiverAddress = strings.TrimSpace(s.ReceiverAddress)
	s.Description = strings.TrimSpace(s.Description)
	p.shipment = s
	return nil
}

func (p *Parcel) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
