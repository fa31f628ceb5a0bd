// Package kernel provides the shared domain primitives of parceltrack:
//   - UUID: the identifier of parcels and users, rejecting the nil UUID
//   - Clock: the time source for ledger timestamps
//
// Primitives are immutable value objects safe for concurrent use.
package kernel
