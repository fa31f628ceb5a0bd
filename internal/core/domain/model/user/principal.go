package user

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
)

// Principal is the authenticated caller as produced by the identity provider.
// Address is the sender's default pickup address.
type Principal struct {
	ID      kernel.UUID
	Role    Role
	Address string
}

// NewPrincipal builds a Principal, rejecting a missing ID or unknown role.
func NewPrincipal(id kernel.UUID, role Role, address string) (Principal, error) {
	p := Principal{ID: id, Role: role, Address: address}
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

// Validate checks the ID and role.
func (p Principal) Validate() error {
	return errors.Join(p.ID.Validate(), p.Role.Validate())
}

// Is reports whether the principal is the user identified by id.
func (p Principal) Is(id kernel.UUID) bool {
	return p.ID.IsEqual(id)
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role Role) bool {
	return p.Role == role
}
