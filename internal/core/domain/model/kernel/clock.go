package kernel

import "time"

// Clock supplies ledger timestamps. Handlers take a Clock so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall clock in UTC.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns c.At.
func (c FixedClock) Now() time.Time {
	return c.At
}
