package booking

import (
	"github.com/borrowspace/service-sharing/internal/domain"
)

// Filter selects a view over a user's bookings. CURRENT, PAST and FUTURE are
// computed against a caller-supplied reference instant, not the server clock,
// so that results are deterministic.
type Filter string

const (
	FilterAll      Filter = "ALL"
	FilterCurrent  Filter = "CURRENT"
	FilterPast     Filter = "PAST"
	FilterFuture   Filter = "FUTURE"
	FilterWaiting  Filter = "WAITING"
	FilterRejected Filter = "REJECTED"
)

// ParseFilter converts a wire-level token to a Filter. Tokens are
// case-sensitive; an unrecognized token is a client error.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	}
	return "", domain.NewBadRequestError("unknown booking state: %s", s)
}
