package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateRange signals a malformed or inverted explicit date range.
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive window of time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolvePeriod turns a relative period token into a concrete range ending at now.
// Unrecognized tokens fall back to the 30 day window.
func ResolvePeriod(token string, now time.Time) DateRange {
	switch token {
	case "7d":
		return DateRange{Start: now.AddDate(0, 0, -7), End: now}
	case "90d":
		return DateRange{Start: now.AddDate(0, 0, -90), End: now}
	case "1y":
		return DateRange{Start: now.AddDate(-1, 0, 0), End: now}
	default:
		return DateRange{Start: now.AddDate(0, 0, -30), End: now}
	}
}

// ResolveRange parses an explicit start/end pair in YYYY-MM-DD form.
func ResolveRange(start, end string) (DateRange, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, start)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, end)
	}
	if startDate.After(endDate) {
		return DateRange{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, start, end)
	}
	return DateRange{Start: startDate, End: endDate}, nil
}

// PreviousWindow returns the contiguous window of equal length ending exactly
// at the start of r.
func PreviousWindow(r DateRange) DateRange {
	length := r.End.Sub(r.Start)
	return DateRange{Start: r.Start.Add(-length), End: r.Start}
}

// Days reports the number of calendar days covered by the range, never below 1
// so that per-day averages stay divisible.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Seconds() / 86400))
	if days < 1 {
		return 1
	}
	return days
}
