package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand represents a sender's request to ship a parcel to a
// registered receiver. The sender address is taken from the principal.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, principal,
//	    "bob@example.com", "2 Side St", "fragile", 1.0, "glassware")
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory, generator, clock, 3)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create parcel: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	principal       user.Principal
	receiverEmail   user.Email
	receiverAddress string
	parcelType      parcel.Type
	weight          parcel.Weight
	description     string

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand validates every field and joins all problems into
// one error.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	principal user.Principal,
	receiverEmail string,
	receiverAddress string,
	parcelType string,
	weight float64,
	description string,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setPrincipal(principal),
		cmd.setReceiverEmail(receiverEmail),
		cmd.setReceiverAddress(receiverAddress),
		cmd.setParcelType(parcelType),
		cmd.setWeight(weight),
		cmd.setDescription(description),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CreateParcelCommand) Principal() user.Principal {
	return c.principal
}

func (c CreateParcelCommand) ReceiverEmail() user.Email {
	return c.receiverEmail
}

// Shipment assembles the shipment facts, with the sender address taken from
// the principal.
func (c CreateParcelCommand) Shipment() parcel.Shipment {
	return parcel.Shipment{
		SenderAddress:   c.principal.Address,
		ReceiverAddress: c.receiverAddress,
		Type:            c.parcelType,
		Weight:          c.weight,
		Description:     c.description,
	}
}

func (c *CreateParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *CreateParcelCommand) setPrincipal(p user.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.principal = p
	return nil
}

func (c *CreateParcelCommand) setReceiverEmail(s string) error {
	email, err := user.NewEmail(s)
	if err != nil {
		return err
	}
	c.receiverEmail = email
	return nil
}

func (c *CreateParcelCommand) setReceiverAddress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errs.NewValueIsRequiredError("receiverAddress")
	}
	c.receiverAddress = s
	return nil
}

func (c *CreateParcelCommand) setParcelType(s string) error {
	t, err := parcel.NewType(s)
	if err != nil {
		return err
	}
	c.parcelType = t
	return nil
}

func (c *CreateParcelCommand) setWeight(kg float64) error {
	w, err := parcel.NewWeight(kg)
	if err != nil {
		return err
	}
	c.weight = w
	return nil
}

func (c *CreateParcelCommand) setDescription(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = s
	return nil
}
