package enums

import "fmt"

// DateFilter selects the reporting window for analytics and reports.
type DateFilter string

const (
	DateFilterAll    DateFilter = "all"
	DateFilterToday  DateFilter = "today"
	DateFilterWeek   DateFilter = "week"
	DateFilterMonth  DateFilter = "month"
	DateFilterCustom DateFilter = "custom"
)

var validDateFilters = []DateFilter{
	DateFilterAll,
	DateFilterToday,
	DateFilterWeek,
	DateFilterMonth,
	DateFilterCustom,
}

// String implements fmt.Stringer.
func (v DateFilter) String() string {
	return string(v)
}

// IsValid reports whether the value is a known DateFilter.
func (v DateFilter) IsValid() bool {
	for _, candidate := range validDateFilters {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseDateFilter converts raw input into a DateFilter.
func ParseDateFilter(value string) (DateFilter, error) {
	for _, candidate := range validDateFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid date filter %q", value)
}
