package booking

import "fmt"

// Status represents the state of a booking in its lifecycle.
//
// Every booking starts WAITING. The item owner moves it to APPROVED or
// REJECTED; both are terminal in practice, though a repeated decision simply
// overwrites the status (last write wins).
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
