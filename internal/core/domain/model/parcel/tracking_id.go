package parcel

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
)

const (
	trackingIDPrefix     = "TRK"
	trackingIDDateLayout = "20060102"
	trackingIDSuffixLen  = 6
	trackingIDAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var trackingIDPattern = regexp.MustCompile(`^TRK-(\d{8})-[A-Z0-9]{6}$`)

// TrackingID is the public tracking code, TRK-<YYYYMMDD>-<6 x [A-Z0-9]>.
type TrackingID struct {
	value string
}

// TrackingIDFromString parses and validates a tracking code.
func TrackingIDFromString(s string) (TrackingID, error) {
	m := trackingIDPattern.FindStringSubmatch(s)
	if m == nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("%q does not match TRK-YYYYMMDD-XXXXXX", s),
		)
	}
	if _, err := time.Parse(trackingIDDateLayout, m[1]); err != nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId", err)
	}
	return TrackingID{value: s}, nil
}

// String returns the tracking code.
func (t TrackingID) String() string {
	return t.value
}

// IsZero reports whether t was never assigned.
func (t TrackingID) IsZero() bool {
	return t.value == ""
}

// TrackingIDGenerator produces a fresh tracking code for a parcel created at createdAt.
type TrackingIDGenerator interface {
	Generate(createdAt time.Time) (TrackingID, error)
}

// RandomTrackingIDGenerator draws the suffix from a cryptographic source. The
// suffix space is 36^6 per day; uniqueness is enforced by the store.
type RandomTrackingIDGenerator struct {
	source io.Reader
}

// NewRandomTrackingIDGenerator returns a generator reading from crypto/rand.
func NewRandomTrackingIDGenerator() *RandomTrackingIDGenerator {
	return &RandomTrackingIDGenerator{source: rand.Reader}
}

// NewTrackingIDGeneratorFromSource returns a generator reading from source.
func NewTrackingIDGeneratorFromSource(source io.Reader) *RandomTrackingIDGenerator {
	return &RandomTrackingIDGenerator{source: source}
}

// Generate formats the UTC date of createdAt and appends a random suffix.
func (g *RandomTrackingIDGenerator) Generate(createdAt time.Time) (TrackingID, error) {
	suffix := make([]byte, 0, trackingIDSuffixLen)
	buf := make([]byte, trackingIDSuffixLen*2)

	// bytes >= 252 are discarded so every symbol is equally likely (252 = 7*36)
	for len(suffix) < trackingIDSuffixLen {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return TrackingID{}, fmt.Errorf("read tracking id entropy: %w", err)
		}
		for _, b := range buf {
			if b >= 252 {
				continue
			}
			suffix = append(suffix, trackingIDAlphabet[int(b)%len(trackingIDAlphabet)])
			if len(suffix) == trackingIDSuffixLen {
				break
			}
		}
	}

	return TrackingID{
		value: fmt.Sprintf("%s-%s-%s", trackingIDPrefix, createdAt.UTC().Format(trackingIDDateLayout), suffix),
	}, nil
}
