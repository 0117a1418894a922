package application

import (
	"fmt"
	"strconv"
	"time"
)

// DateTimeLayout is the wire format for booking timestamps: a naive local
// datetime without timezone offset.
const DateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a time.Time that marshals to and from the naive
// DateTimeLayout wire format.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime wraps a time.Time for wire serialization.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// FromWallClock re-reads t's wall-clock fields in the wire frame, discarding
// the zone offset. Stored timestamps are naive, so a reference instant taken
// from the server clock must be placed in the same frame regardless of the
// server's zone.
func FromWallClock(t time.Time) LocalDateTime {
	return LocalDateTime{Time: time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.UTC,
	)}
}

// NowLocalDateTime returns the current wall-clock reading in the wire frame.
// This is the default reference instant when the caller supplies none.
func NowLocalDateTime() LocalDateTime {
	return FromWallClock(time.Now())
}

// ParseLocalDateTime parses a naive datetime string.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("invalid datetime %q: expected format %s", s, DateTimeLayout)
	}
	return LocalDateTime{Time: t}, nil
}

// MarshalJSON serializes the timestamp without a timezone offset.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Format(DateTimeLayout))), nil
}

// UnmarshalJSON parses a naive datetime JSON string.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid datetime value: %s", data)
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
