package maintenance

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

const (
	// DueSoonWindow is how far ahead a next_due_date counts as due soon.
	DueSoonWindow = 7 * 24 * time.Hour
	// DueSoonKm is how close the odometer must be to next_due_km to count as due soon.
	DueSoonKm = 500
)

// DueStatus classifies a schedule against the vehicle's odometer and now.
// Date and distance are checked independently; the more urgent result wins.
func DueStatus(s models.MaintenanceSchedule, odometer int, now time.Time) enums.DueStatus {
	if s.NextDueDate == nil && s.NextDueKm == nil {
		return enums.DueStatusUnscheduled
	}
	if s.NextDueDate != nil && s.NextDueDate.Before(now) {
		return enums.DueStatusOverdue
	}
	if s.NextDueKm != nil && odometer >= *s.NextDueKm {
		return enums.DueStatusOverdue
	}
	if s.NextDueDate != nil && !s.NextDueDate.After(now.Add(DueSoonWindow)) {
		return enums.DueStatusDueSoon
	}
	if s.NextDueKm != nil && odometer >= *s.NextDueKm-DueSoonKm {
		return enums.DueStatusDueSoon
	}
	return enums.DueStatusScheduled
}

// NextDue projects the next service from the last one. A nil interval or a
// missing baseline yields nil for that dimension.
func NextDue(lastDate *time.Time, lastKm *int, intervalMonths, intervalKm *int) (*time.Time, *int) {
	var nextDate *time.Time
	var nextKm *int
	if lastDate != nil && intervalMonths != nil && *intervalMonths > 0 {
		d := lastDate.AddDate(0, *intervalMonths, 0)
		nextDate = &d
	}
	if lastKm != nil && intervalKm != nil && *intervalKm > 0 {
		km := *lastKm + *intervalKm
		nextKm = &km
	}
	return nextDate, nextKm
}

// VehicleOdometer reads the schedule's vehicle odometer, or 0 when the vehicle was not preloaded.
func VehicleOdometer(s models.MaintenanceSchedule) int {
	if s.Vehicle == nil {
		return 0
	}
	return s.Vehicle.CurrentOdometer
}
