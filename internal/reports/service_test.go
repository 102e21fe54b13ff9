package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type stubLoader struct {
	snap *analytics.Snapshot
	q    analytics.Query
}

func (s *stubLoader) Load(ctx context.Context, q analytics.Query) (*analytics.Snapshot, error) {
	s.q = q
	return s.snap, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func fixtureSnapshot() *analytics.Snapshot {
	ops := &models.Department{ID: 1, Code: "OPS", Name: "Operations, East"}
	driver := &models.User{ID: 4, CoynoID: "CO-4", FirstName: "Grace", LastName: `"Gigi" Ho`, UserRole: enums.UserRoleDriver}
	van := models.Vehicle{ID: 1, NumberPlate: "VAN1", Make: "Ford", Model: "Transit", Year: 2020, FuelType: enums.FuelTypeDiesel,
		Status: enums.VehicleStatusActive, CurrentOdometer: 1200, DepartmentID: &ops.ID, Department: ops, AssignedDriver: driver}
	car := models.Vehicle{ID: 2, NumberPlate: "CAR1", Make: "Toyota", Model: "Corolla", Year: 2022, FuelType: enums.FuelTypePetrol,
		Status: enums.VehicleStatusAvailable, CurrentOdometer: 300}

	start := reportNow.Add(-2 * time.Hour)
	end := start.Add(time.Hour)
	trip := models.Trip{ID: 1, VehicleID: 1, Vehicle: &van, DriverID: 4, Driver: driver, StartTime: start, EndTime: &end,
		StartOdometer: 1000, EndOdometer: intPtr(1200), CalculatedDistance: intPtr(200), FuelConsumed: floatPtr(16),
		FuelCost: decimal.NewNullDecimal(decimal.RequireFromString("32.00")), Status: enums.TripStatusCompleted}

	served := reportNow.AddDate(0, 0, -1)
	schedule := models.MaintenanceSchedule{ID: 1, VehicleID: 1, Vehicle: &van, MaintenanceType: enums.MaintenanceTypeOilChange,
		LastServiceDate: &served, LastCost: decimal.NewNullDecimal(decimal.RequireFromString("68.00")), NextDueKm: intPtr(1300)}

	return &analytics.Snapshot{
		Dataset: analytics.Dataset{
			Vehicles:    []models.Vehicle{car, van},
			Trips:       []models.Trip{trip},
			Departments: []models.Department{*ops},
			Users:       []models.User{*driver},
			Schedules:   []models.MaintenanceSchedule{schedule},
		},
		Window: &analytics.DateRange{Start: reportNow.AddDate(0, 0, -7), End: reportNow},
		Now:    reportNow,
	}
}

func generate(t *testing.T, name, filter string) (*File, []string) {
	t.Helper()
	svc, err := NewService(&stubLoader{snap: fixtureSnapshot()})
	require.NoError(t, err)
	file, err := svc.Generate(context.Background(), name, analytics.Query{Filter: filter})
	require.NoError(t, err)
	return file, strings.Split(strings.TrimRight(string(file.Content), "\n"), "\n")
}

func TestGenerateFilename(t *testing.T) {
	file, _ := generate(t, FleetSummary, "")
	assert.Equal(t, "fleet-summary-all-2025-03-10.csv", file.Filename)

	file, _ = generate(t, Utilization, "week")
	assert.Equal(t, "utilization-week-2025-03-10.csv", file.Filename)
}

func TestGenerateUnknownReport(t *testing.T) {
	svc, err := NewService(&stubLoader{snap: fixtureSnapshot()})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "payroll", analytics.Query{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestFleetSummaryQuotesDepartment(t *testing.T) {
	_, lines := generate(t, FleetSummary, "month")
	require.Len(t, lines, 3)
	assert.Equal(t, "Number Plate,Make,Model,Year,Fuel Type,Status,Department,Assigned Driver,Odometer (km),Trips,Distance (km)", lines[0])
	assert.Equal(t, `VAN1,Ford,Transit,2020,diesel,active,"Operations, East","Grace ""Gigi"" Ho",1200,1,200`, lines[2])
	assert.Equal(t, "CAR1,Toyota,Corolla,2022,petrol,available,Unassigned,,300,0,0", lines[1])
}

func TestFuelConsumptionRows(t *testing.T) {
	_, lines := generate(t, FuelConsumption, "")
	require.Len(t, lines, 2)
	assert.Equal(t, `2025-03-10,VAN1,"Grace ""Gigi"" Ho",200,16.00,32.00,12.50`, lines[1])
}

func TestMaintenanceScheduleRows(t *testing.T) {
	_, lines := generate(t, MaintenanceSchedule, "")
	require.Len(t, lines, 2)
	assert.Equal(t, "VAN1,oil_change,,2025-03-09,,,1300,due_soon,", lines[1])
}

func TestCostAnalysisTotals(t *testing.T) {
	_, lines := generate(t, CostAnalysis, "week")
	require.Len(t, lines, 4)
	assert.Equal(t, `VAN1,"Operations, East",1,200,32.00,68.00,100.00,0.50`, lines[2])
	assert.Equal(t, "TOTAL,,1,200,32.00,68.00,100.00,0.50", lines[3])
}

func TestDriverPerformanceAndUtilization(t *testing.T) {
	_, lines := generate(t, DriverPerformance, "")
	require.Len(t, lines, 2)
	assert.Equal(t, `CO-4,"Grace ""Gigi"" Ho",Unassigned,1,1,200,60,16.00,32.00,12.50`, lines[1])

	_, lines = generate(t, Utilization, "")
	require.Len(t, lines, 3)
	assert.Equal(t, `VAN1,active,"Operations, East",1,200,1.0`, lines[1])
	assert.Equal(t, "CAR1,available,Unassigned,0,0,0.0", lines[2])
}
