package parcel

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	// ErrStatusLogEntryIsNotConstructed is returned for entries built as literals.
	ErrStatusLogEntryIsNotConstructed = errors.New("StatusLogEntry must be created via NewStatusLogEntry")

	// ErrLedgerIsEmpty is returned when restoring a parcel without history.
	ErrLedgerIsEmpty = errs.NewValueIsRequiredError("status ledger entry")
)

// StatusLogEntry records one status change: what, when, by whom, and optional
// admin supplied context. Entries are immutable.
type StatusLogEntry struct {
	status    Status
	timestamp time.Time
	updatedBy kernel.UUID
	location  string
	note      string

	guard guard.ConstructorGuard
}

// NewStatusLogEntry validates and builds a ledger entry. Empty location and note
// mean "not supplied".
func NewStatusLogEntry(
	status Status,
	updatedBy kernel.UUID,
	timestamp time.Time,
	location, note string,
) (StatusLogEntry, error) {
	var errTimestamp error
	if timestamp.IsZero() {
		errTimestamp = errs.NewValueIsRequiredError("timestamp")
	}
	if err := errors.Join(status.Validate(), updatedBy.Validate(), errTimestamp); err != nil {
		return StatusLogEntry{}, err
	}

	return StatusLogEntry{
		status:    status,
		timestamp: timestamp,
		updatedBy: updatedBy,
		location:  strings.TrimSpace(location),
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was built through NewStatusLogEntry.
func (e StatusLogEntry) Validate() error {
	return e.guard.Validate(ErrStatusLogEntryIsNotConstructed)
}

func (e StatusLogEntry) Status() Status         { return e.status }
func (e StatusLogEntry) Timestamp() time.Time   { return e.timestamp }
func (e StatusLogEntry) UpdatedBy() kernel.UUID { return e.updatedBy }
func (e StatusLogEntry) Location() string       { return e.location }
func (e StatusLogEntry) Note() string           { return e.note }

// StatusLedger is the append-only status history of one parcel. Insertion order
// is the order of events and timestamps never decrease.
type StatusLedger struct {
	entries []StatusLogEntry
}

// RestoreStatusLedger rebuilds a ledger from persisted entries, re-checking the
// ordering invariant.
func RestoreStatusLedger(entries []StatusLogEntry) (StatusLedger, error) {
	var ledger StatusLedger
	for _, entry := range entries {
		if err := ledger.Append(entry); err != nil {
			return StatusLedger{}, err
		}
	}
	return ledger, nil
}

// Append adds entry at the end. It never removes or reorders entries.
func (l *StatusLedger) Append(entry StatusLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if last, ok := l.Last(); ok && entry.timestamp.Before(last.timestamp) {
		return errs.NewValueIsInvalidErrorWithCause(
			"timestamp",
			fmt.Errorf("%s is before the last ledger entry at %s",
				entry.timestamp.Format(time.RFC3339Nano), last.timestamp.Format(time.RFC3339Nano)),
		)
	}

	l.entries = append(l.entries, entry)
	return nil
}

// History returns a copy of the entries in insertion order.
func (l StatusLedger) History() []StatusLogEntry {
	return slices.Clone(l.entries)
}

// Last returns the most recent entry.
func (l StatusLedger) Last() (StatusLogEntry, bool) {
	if len(l.entries) == 0 {
		return StatusLogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of entries.
func (l StatusLedger) Len() int {
	return len(l.entries)
}
