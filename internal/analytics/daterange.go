package analytics

import (
	"strings"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
)

// DateRange is an inclusive reporting window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window. A nil range contains everything.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// BuildDateRange resolves a filter keyword into a window ending at now.
// "all" (or an empty filter) yields nil. Custom bounds accept YYYY-MM-DD,
// read as UTC midnight, or RFC3339; start is not required to precede end.
func BuildDateRange(now time.Time, filter, start, end string) (*DateRange, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return nil, nil
	}
	kind, err := enums.ParseDateFilter(filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date filter")
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch kind {
	case enums.DateFilterToday:
		return &DateRange{Start: midnight, End: now}, nil
	case enums.DateFilterWeek:
		return &DateRange{Start: midnight.AddDate(0, 0, -int(now.Weekday())), End: now}, nil
	case enums.DateFilterMonth:
		return &DateRange{Start: midnight.AddDate(0, 0, 1-now.Day()), End: now}, nil
	case enums.DateFilterCustom:
		return customRange(start, end)
	}
	return nil, nil
}

func customRange(start, end string) (*DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	var out DateRange
	if start != "" {
		t, err := parseBound(start)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid start_date %q", start)
		}
		out.Start = t
	}
	if end == "" {
		out.End = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		return &out, nil
	}
	t, err := parseBound(end)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid end_date %q", end)
	}
	out.End = t
	return &out, nil
}

func parseBound(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
