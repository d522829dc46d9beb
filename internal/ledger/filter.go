package ledger

import (
	"strings"
	"time"
)

// Filter narrows a ledger listing. Client matching is a case-insensitive
// substring, status is exact, date bounds are inclusive.
type Filter struct {
	ClientName string
	Status     Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Match reports whether one entry passes the filter.
func (f Filter) Match(e SaleEntry) bool {
	if f.ClientName != "" && !strings.Contains(strings.ToLower(e.ClientName), strings.ToLower(f.ClientName)) {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Apply returns the entries passing the filter, preserving order.
func Apply(entries []SaleEntry, f Filter) []SaleEntry {
	out := make([]SaleEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
