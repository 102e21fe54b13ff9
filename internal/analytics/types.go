package analytics

import (
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Scope narrows every analytics load. Zero values mean no narrowing.
// CompanyID matches the driver's coyno_id.
type Scope struct {
	CompanyID    string
	DepartmentID *uint
	UserID       *uint
}

// Dataset is the in-memory snapshot the aggregators fold over. Trips are
// already restricted to the window; everything else is a current snapshot.
type Dataset struct {
	Vehicles    []models.Vehicle
	Trips       []models.Trip
	Departments []models.Department
	Users       []models.User
	Schedules   []models.MaintenanceSchedule
}

// LabelValue is a single bucket of a categorical breakdown.
type LabelValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// TimeSeriesPoint describes a single date/value pair.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type DashboardMetrics struct {
	TotalVehicles         int             `json:"total_vehicles"`
	ActiveVehicles        int             `json:"active_vehicles"`
	VehiclesInMaintenance int             `json:"vehicles_in_maintenance"`
	RetiredVehicles       int             `json:"retired_vehicles"`
	UtilizationRate       int             `json:"utilization_rate"`
	TotalDrivers          int             `json:"total_drivers"`
	TotalDepartments      int             `json:"total_departments"`
	TotalTrips            int             `json:"total_trips"`
	ActiveTrips           int             `json:"active_trips"`
	CompletedTrips        int             `json:"completed_trips"`
	TotalDistance         int             `json:"total_distance"`
	TotalFuel             float64         `json:"total_fuel"`
	TotalFuelCost         decimal.Decimal `json:"total_fuel_cost"`
	MaintenanceOverdue    int             `json:"maintenance_overdue"`
	MaintenanceDueSoon    int             `json:"maintenance_due_soon"`
	Window                *DateRange      `json:"window,omitempty"`
}

type VehicleDistance struct {
	VehicleID   uint   `json:"vehicle_id"`
	NumberPlate string `json:"number_plate"`
	Trips       int    `json:"trips"`
	Distance    int    `json:"distance"`
}

type VehicleMetrics struct {
	TotalVehicles   int                         `json:"total_vehicles"`
	ActiveVehicles  int                         `json:"active_vehicles"`
	UtilizationRate int                         `json:"utilization_rate"`
	ByStatus        map[enums.VehicleStatus]int `json:"by_status"`
	ByFuelType      map[enums.FuelType]int      `json:"by_fuel_type"`
	ByDepartment    []LabelValue                `json:"by_department"`
	AverageOdometer int                         `json:"average_odometer"`
	AverageAge      float64                     `json:"average_age"`
	TopByDistance   []VehicleDistance           `json:"top_by_distance"`
}

type TripMetrics struct {
	TotalTrips             int               `json:"total_trips"`
	ActiveTrips            int               `json:"active_trips"`
	CompletedTrips         int               `json:"completed_trips"`
	CancelledTrips         int               `json:"cancelled_trips"`
	TotalDistance          int               `json:"total_distance"`
	AverageDistance        float64           `json:"average_distance"`
	TotalDurationMinutes   int               `json:"total_duration_minutes"`
	AverageDurationMinutes float64           `json:"average_duration_minutes"`
	TripsPerDay            []TimeSeriesPoint `json:"trips_per_day"`
}

type FuelTypeUsage struct {
	FuelType enums.FuelType  `json:"fuel_type"`
	Fuel     float64         `json:"fuel"`
	Cost     decimal.Decimal `json:"cost"`
	Distance int             `json:"distance"`
}

type FuelMetrics struct {
	TotalFuel         float64         `json:"total_fuel"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalDistance     int             `json:"total_distance"`
	AverageEfficiency float64         `json:"average_efficiency"`
	CostPerKm         decimal.Decimal `json:"cost_per_km"`
	FuelledTrips      int             `json:"fuelled_trips"`
	ByFuelType        []FuelTypeUsage `json:"by_fuel_type"`
}

type MaintenanceMetrics struct {
	Total            int                           `json:"total"`
	Overdue          int                           `json:"overdue"`
	DueSoon          int                           `json:"due_soon"`
	Scheduled        int                           `json:"scheduled"`
	Unscheduled      int                           `json:"unscheduled"`
	ByType           map[enums.MaintenanceType]int `json:"by_type"`
	CompletedInRange int                           `json:"completed_in_range"`
	CompletedCost    decimal.Decimal               `json:"completed_cost"`
	EstimatedDueCost decimal.Decimal               `json:"estimated_due_cost"`
}

type DepartmentMetrics struct {
	DepartmentID    *uint           `json:"department_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Vehicles        int             `json:"vehicles"`
	ActiveVehicles  int             `json:"active_vehicles"`
	UtilizationRate int             `json:"utilization_rate"`
	Users           int             `json:"users"`
	Trips           int             `json:"trips"`
	Distance        int             `json:"distance"`
	FuelCost        decimal.Decimal `json:"fuel_cost"`
}

type VehicleUtilization struct {
	VehicleID   uint                `json:"vehicle_id"`
	NumberPlate string              `json:"number_plate"`
	Status      enums.VehicleStatus `json:"status"`
	Department  string              `json:"department"`
	Trips       int                 `json:"trips"`
	Distance    int                 `json:"distance"`
	HoursInUse  float64             `json:"hours_in_use"`
}

type UtilizationMetrics struct {
	TotalVehicles     int                  `json:"total_vehicles"`
	ActiveVehicles    int                  `json:"active_vehicles"`
	UtilizationRate   int                  `json:"utilization_rate"`
	VehiclesWithTrips int                  `json:"vehicles_with_trips"`
	IdleVehicles      int                  `json:"idle_vehicles"`
	ByVehicle         []VehicleUtilization `json:"by_vehicle"`
}

type DriverMetrics struct {
	DriverID          uint            `json:"driver_id"`
	CoynoID           string          `json:"coyno_id"`
	Name              string          `json:"name"`
	Department        string          `json:"department"`
	Trips             int             `json:"trips"`
	CompletedTrips    int             `json:"completed_trips"`
	Distance          int             `json:"distance"`
	DurationMinutes   int             `json:"duration_minutes"`
	Fuel              float64         `json:"fuel"`
	FuelCost          decimal.Decimal `json:"fuel_cost"`
	AverageEfficiency float64         `json:"average_efficiency"`
}
