package services

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// ParcelParties is the part of a parcel the access checks depend on. Both the
// aggregate and read projections can produce it.
type ParcelParties struct {
	Sender   kernel.UUID
	Receiver kernel.UUID
	Status   parcel.Status
}

// PartiesOf extracts the parties of a loaded aggregate.
func PartiesOf(p *parcel.Parcel) ParcelParties {
	return ParcelParties{
		Sender:   p.Sender(),
		Receiver: p.Receiver(),
		Status:   p.Status(),
	}
}

// AccessPolicy decides whether a principal may perform an operation on a
// parcel. A nil error means allowed; otherwise the error is an
// *errs.ForbiddenError or, for status preconditions, an
// *errs.InvalidTransitionError.
//
// Example:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.CanCancel(principal, services.PartiesOf(p)); err != nil {
//	    return err
//	}
//	err = p.Cancel(principal.ID, clock.Now())
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanCreate allows senders only.
func (AccessPolicy) CanCreate(principal user.Principal) error {
	return requireRole(principal, user.RoleSender, "create parcel")
}

// CanViewDetail allows admins and both parties of the parcel.
func (AccessPolicy) CanViewDetail(principal user.Principal, parties ParcelParties) error {
	if principal.HasRole(user.RoleAdmin) || principal.Is(parties.Sender) || principal.Is(parties.Receiver) {
		return nil
	}
	return errs.NewForbiddenError("view parcel", "not a participant")
}

// CanTrackPublic always allows. Tracking by code only needs an authenticated
// session, which the transport layer already established.
func (AccessPolicy) CanTrackPublic(user.Principal) error {
	return nil
}

// CanCancel allows the parcel's sender while the parcel is requested or approved.
// Ownership is checked before status so strangers learn nothing about the parcel.
func (AccessPolicy) CanCancel(principal user.Principal, parties ParcelParties) error {
	if !principal.Is(parties.Sender) {
		return errs.NewForbiddenError("cancel parcel", "only the sender can cancel")
	}
	return parties.Status.ValidateCancel()
}

// CanConfirmDelivery allows the parcel's receiver while the parcel is in transit.
func (AccessPolicy) CanConfirmDelivery(principal user.Principal, parties ParcelParties) error {
	if !principal.Is(parties.Receiver) {
		return errs.NewForbiddenError("confirm delivery", "only the receiver can confirm delivery")
	}
	return parties.Status.ValidateConfirmDelivery()
}

// CanAdminOverride allows admins to force any status. No adjacency check is
// made against the current status.
func (AccessPolicy) CanAdminOverride(principal user.Principal) error {
	return requireRole(principal, user.RoleAdmin, "update parcel status")
}

// CanListAll allows admins only.
func (AccessPolicy) CanListAll(principal user.Principal) error {
	return requireRole(principal, user.RoleAdmin, "list all parcels")
}

// CanListSent allows senders only.
func (AccessPolicy) CanListSent(principal user.Principal) error {
	return requireRole(principal, user.RoleSender, "list sent parcels")
}

// CanListReceived allows receivers only.
func (AccessPolicy) CanListReceived(principal user.Principal) error {
	return requireRole(principal, user.RoleReceiver, "list received parcels")
}

// CanManageUsers allows admins only.
func (AccessPolicy) CanManageUsers(principal user.Principal) error {
	return requireRole(principal, user.RoleAdmin, "manage users")
}

func requireRole(principal user.Principal, role user.Role, action string) error {
	if !principal.HasRole(role) {
		return errs.NewForbiddenError(action, "requires role "+role.String())
	}
	return nil
}
