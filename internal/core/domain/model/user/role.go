package user

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Role decides which parcel operations a principal may perform.
type Role int

const (
	// RoleUnknown catches uninitialized roles.
	RoleUnknown Role = iota

	// RoleSender creates parcels and may cancel them before dispatch.
	RoleSender

	// RoleReceiver confirms delivery of parcels addressed to them.
	RoleReceiver

	// RoleAdmin lists all parcels, overrides status and manages users.
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleSender:   "sender",
	RoleReceiver: "receiver",
	RoleAdmin:    "admin",
}

// ParseRole converts the wire form ("sender", "receiver", "admin") to a Role.
// Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == needle {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire form of the role, or "unknown".
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
