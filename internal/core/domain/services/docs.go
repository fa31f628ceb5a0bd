// Package services provides domain services that answer questions spanning
// more than one aggregate or principal in the parcel tracking system.
//
// The package includes:
//   - AccessPolicy: role and relationship checks for every parcel operation
//
// Checks are pure: they never load data and never mutate the parcel they are
// given. Callers decide what to do with the returned error; the lifecycle
// handlers return it unchanged so the HTTP edge can map it to a status code.
package services
