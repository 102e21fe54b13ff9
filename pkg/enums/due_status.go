package enums

import "fmt"

// DueStatus is computed at read time for maintenance schedules; it is never persisted.
type DueStatus string

const (
	DueStatusOverdue     DueStatus = "overdue"
	DueStatusDueSoon     DueStatus = "due_soon"
	DueStatusScheduled   DueStatus = "scheduled"
	DueStatusUnscheduled DueStatus = "unscheduled"
)

var validDueStatuses = []DueStatus{
	DueStatusOverdue,
	DueStatusDueSoon,
	DueStatusScheduled,
	DueStatusUnscheduled,
}

// String implements fmt.Stringer.
func (v DueStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known DueStatus.
func (v DueStatus) IsValid() bool {
	for _, candidate := range validDueStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseDueStatus converts raw input into a DueStatus.
func ParseDueStatus(value string) (DueStatus, error) {
	for _, candidate := range validDueStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid due status %q", value)
}
