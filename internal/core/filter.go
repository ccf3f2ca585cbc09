package core

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// DefaultTraffic lists the traffic densities present in the source data.
var DefaultTraffic = []string{"Low", "Medium", "High", "Jam"}

// ErrUnknownTraffic is returned for a traffic density outside DefaultTraffic.
var ErrUnknownTraffic = errors.New("unknown traffic density")

// ValidateTraffic checks that every requested density exists in the data.
func ValidateTraffic(traffic []string) error {
	for _, t := range traffic {
		if !slices.Contains(DefaultTraffic, t) {
			return fmt.Errorf("%w %q", ErrUnknownTraffic, t)
		}
	}
	return nil
}

// Filter selects a view of the canonical records.
// Both conditions are combined with AND logic.
type Filter struct {
	// Cutoff keeps records ordered strictly before this date.
	// The zero value disables the date condition.
	Cutoff time.Time

	// Traffic keeps records whose traffic density is in the set.
	// A nil set disables the condition; an empty non-nil set keeps nothing.
	Traffic []string
}

// Apply returns the records matching the filter as a new slice.
// The input slice is never modified.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !f.Cutoff.IsZero() && !r.OrderDate.Before(f.Cutoff) {
			continue
		}
		if f.Traffic != nil && !slices.Contains(f.Traffic, r.Traffic) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DateSpan holds the first and last order dates of a record set.
type DateSpan struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// DateRange returns the earliest and latest order dates.
// Used by the presentation layer to bound the cutoff selector.
func DateRange(records []Record) (DateSpan, error) {
	if len(records) == 0 {
		return DateSpan{}, emptyInput("date range")
	}
	span := DateSpan{First: records[0].OrderDate, Last: records[0].OrderDate}
	for _, r := range records[1:] {
		if r.OrderDate.Before(span.First) {
			span.First = r.OrderDate
		}
		if r.OrderDate.After(span.Last) {
			span.Last = r.OrderDate
		}
	}
	return span, nil
}
