package maintenance

import (
	"testing"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestDueStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		schedule models.MaintenanceSchedule
		odometer int
		want     enums.DueStatus
	}{
		{"no due fields", models.MaintenanceSchedule{}, 1000, enums.DueStatusUnscheduled},
		{"date passed", models.MaintenanceSchedule{NextDueDate: timePtr(now.Add(-time.Hour))}, 0, enums.DueStatusOverdue},
		{"km reached", models.MaintenanceSchedule{NextDueKm: intPtr(10000)}, 10000, enums.DueStatusOverdue},
		{"date within window", models.MaintenanceSchedule{NextDueDate: timePtr(now.Add(6 * 24 * time.Hour))}, 0, enums.DueStatusDueSoon},
		{"date on window edge", models.MaintenanceSchedule{NextDueDate: timePtr(now.Add(DueSoonWindow))}, 0, enums.DueStatusDueSoon},
		{"km within margin", models.MaintenanceSchedule{NextDueKm: intPtr(10000)}, 9600, enums.DueStatusDueSoon},
		{"far date", models.MaintenanceSchedule{NextDueDate: timePtr(now.Add(30 * 24 * time.Hour))}, 0, enums.DueStatusScheduled},
		{"far km", models.MaintenanceSchedule{NextDueKm: intPtr(10000)}, 2000, enums.DueStatusScheduled},
		{"km overdue beats far date", models.MaintenanceSchedule{NextDueDate: timePtr(now.Add(90 * 24 * time.Hour)), NextDueKm: intPtr(5000)}, 6000, enums.DueStatusOverdue},
	}

	for _, tc := range cases {
		if got := DueStatus(tc.schedule, tc.odometer, now); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestNextDue(t *testing.T) {
	last := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	date, km := NextDue(&last, intPtr(12000), intPtr(6), intPtr(5000))
	if date == nil || !date.Equal(last.AddDate(0, 6, 0)) {
		t.Fatalf("unexpected next date %v", date)
	}
	if km == nil || *km != 17000 {
		t.Fatalf("unexpected next km %v", km)
	}

	date, km = NextDue(nil, intPtr(12000), intPtr(6), nil)
	if date != nil || km != nil {
		t.Fatalf("expected nil projections, got %v %v", date, km)
	}
}

func TestVehicleOdometer(t *testing.T) {
	if got := VehicleOdometer(models.MaintenanceSchedule{}); got != 0 {
		t.Fatalf("schedule without vehicle: got %d want 0", got)
	}
	s := models.MaintenanceSchedule{Vehicle: &models.Vehicle{CurrentOdometer: 42100}}
	if got := VehicleOdometer(s); got != 42100 {
		t.Fatalf("got %d want 42100", got)
	}
}
