package commands

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var ErrSetParcelStatusCommandIsNotConstructed = errors.New(
	"SetParcelStatusCommand must be created via NewSetParcelStatusCommand constructor",
)

// SetParcelStatusCommand is the admin override. The target status is checked
// against the fixed status set only, never against the current status.
//
// Example:
//
//	eta := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
//	cmd, err := NewSetParcelStatusCommand(admin, parcelID, "in-transit", "Hub 3", "left sorting", &eta)
type SetParcelStatusCommand struct {
	principal            user.Principal
	parcelID             kernel.UUID
	status               parcel.Status
	location             string
	note                 string
	expectedDeliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewSetParcelStatusCommand parses status from its wire form. location, note
// and expectedDeliveryDate are optional.
func NewSetParcelStatusCommand(
	principal user.Principal,
	parcelID kernel.UUID,
	status string,
	location, note string,
	expectedDeliveryDate *time.Time,
) (SetParcelStatusCommand, error) {
	parsed, errStatus := parcel.ParseStatus(status)
	if err := errors.Join(principal.Validate(), parcelID.Validate(), errStatus); err != nil {
		return SetParcelStatusCommand{}, err
	}

	return SetParcelStatusCommand{
		principal:            principal,
		parcelID:             parcelID,
		status:               parsed,
		location:             strings.TrimSpace(location),
		note:                 strings.TrimSpace(note),
		expectedDeliveryDate: expectedDeliveryDate,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c SetParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetParcelStatusCommandIsNotConstructed)
}

func (c SetParcelStatusCommand) Principal() user.Principal        { return c.principal }
func (c SetParcelStatusCommand) ParcelID() kernel.UUID            { return c.parcelID }
func (c SetParcelStatusCommand) Status() parcel.Status            { return c.status }
func (c SetParcelStatusCommand) Location() string                 { return c.location }
func (c SetParcelStatusCommand) Note() string                     { return c.note }
func (c SetParcelStatusCommand) ExpectedDeliveryDate() *time.Time { return c.expectedDeliveryDate }
