// Package user models the people acting on parcels: senders, receivers and
// admins. Users are owned by the user directory; the parcel lifecycle only
// references them by ID and consumes the Principal derived from an
// authenticated user.
package user
