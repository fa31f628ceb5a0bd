// Package parcel provides the Parcel aggregate root and its lifecycle.
//
// The package includes:
//   - Parcel: the aggregate owning shipment facts, parties and the status ledger
//   - Status: the fixed delivery status set and the guarded transitions
//   - StatusLedger / StatusLogEntry: the append-only audit trail
//   - Fee model: CalculateFee derives the fee from weight and parcel type
//   - TrackingID: the public, human-shareable tracking code
//
// Key business rules:
//   - A new parcel starts in requested, with one ledger entry by its sender
//   - Parcel.Status() is always the status of the last ledger entry
//   - The ledger only grows; entries never change once appended
//   - Cancel is allowed from requested and approved only
//   - ConfirmDelivery is allowed from in-transit only
//   - ForceSetStatus is the admin escape hatch and skips transition checks
//
// Who may call which operation is decided by services.AccessPolicy, not here.
package parcel
