package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/maintenance"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	unassignedLabel = "Unassigned"
	topVehicleCount = 5
)

// utilizationRate is the rounded percentage of active vehicles, 0 for an empty fleet.
func utilizationRate(active, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(active) / float64(total) * 100))
}

func round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func ratio(num, den float64, places int) float64 {
	if den <= 0 {
		return 0
	}
	return round(num/den, places)
}

func activeCount(vehicles []models.Vehicle) int {
	n := 0
	for _, v := range vehicles {
		if v.Status.CountsAsUtilized() {
			n++
		}
	}
	return n
}

func fuelOf(t models.Trip) float64 {
	if t.FuelConsumed == nil || *t.FuelConsumed <= 0 {
		return 0
	}
	return *t.FuelConsumed
}

func costOf(t models.Trip) decimal.Decimal {
	if !t.FuelCost.Valid {
		return decimal.Zero
	}
	return t.FuelCost.Decimal
}

func durationMinutes(t models.Trip) int {
	return int(math.Round(t.Duration().Minutes()))
}

func departmentLabel(d *models.Department) string {
	if d == nil {
		return unassignedLabel
	}
	return d.Name
}

func driverName(u *models.User) string {
	if u == nil {
		return unassignedLabel
	}
	return u.FullName()
}

// Dashboard folds the whole dataset into the headline figures.
func Dashboard(ds Dataset, now time.Time, window *DateRange) DashboardMetrics {
	out := DashboardMetrics{
		TotalVehicles:    len(ds.Vehicles),
		ActiveVehicles:   activeCount(ds.Vehicles),
		TotalDepartments: len(ds.Departments),
		TotalTrips:       len(ds.Trips),
		TotalFuelCost:    decimal.Zero,
		Window:           window,
	}
	out.UtilizationRate = utilizationRate(out.ActiveVehicles, out.TotalVehicles)
	for _, v := range ds.Vehicles {
		switch v.Status {
		case enums.VehicleStatusMaintenance:
			out.VehiclesInMaintenance++
		case enums.VehicleStatusRetired:
			out.RetiredVehicles++
		}
	}
	for _, u := range ds.Users {
		if u.UserRole == enums.UserRoleDriver {
			out.TotalDrivers++
		}
	}
	for _, t := range ds.Trips {
		switch t.Status {
		case enums.TripStatusActive:
			out.ActiveTrips++
		case enums.TripStatusCompleted:
			out.CompletedTrips++
			out.TotalDistance += t.Distance()
		}
		out.TotalFuel += fuelOf(t)
		out.TotalFuelCost = out.TotalFuelCost.Add(costOf(t))
	}
	out.TotalFuel = round(out.TotalFuel, 2)
	for i := range ds.Schedules {
		switch maintenance.DueStatus(ds.Schedules[i], maintenance.VehicleOdometer(ds.Schedules[i]), now) {
		case enums.DueStatusOverdue:
			out.MaintenanceOverdue++
		case enums.DueStatusDueSoon:
			out.MaintenanceDueSoon++
		}
	}
	return out
}

// Vehicles breaks the fleet down by status, fuel type and department.
func Vehicles(ds Dataset, now time.Time) VehicleMetrics {
	out := VehicleMetrics{
		TotalVehicles: len(ds.Vehicles),
		ByStatus:      map[enums.VehicleStatus]int{},
		ByFuelType:    map[enums.FuelType]int{},
		ByDepartment:  []LabelValue{},
		TopByDistance: []VehicleDistance{},
	}
	out.ActiveVehicles = activeCount(ds.Vehicles)
	out.UtilizationRate = utilizationRate(out.ActiveVehicles, out.TotalVehicles)

	byDept := map[string]int{}
	var order []string
	odometer, age := 0, 0
	for _, v := range ds.Vehicles {
		out.ByStatus[v.Status]++
		out.ByFuelType[v.FuelType]++
		label := departmentLabel(v.Department)
		if _, seen := byDept[label]; !seen {
			order = append(order, label)
		}
		byDept[label]++
		odometer += v.CurrentOdometer
		age += now.Year() - v.Year
	}
	for _, label := range order {
		out.ByDepartment = append(out.ByDepartment, LabelValue{Label: label, Value: byDept[label]})
	}
	if n := len(ds.Vehicles); n > 0 {
		out.AverageOdometer = int(math.Round(float64(odometer) / float64(n)))
		out.AverageAge = ratio(float64(age), float64(n), 1)
	}

	usage := perVehicle(ds)
	for _, u := range usage {
		if u.Trips == 0 {
			continue
		}
		out.TopByDistance = append(out.TopByDistance, VehicleDistance{
			VehicleID:   u.VehicleID,
			NumberPlate: u.NumberPlate,
			Trips:       u.Trips,
			Distance:    u.Distance,
		})
	}
	sort.SliceStable(out.TopByDistance, func(i, j int) bool {
		return out.TopByDistance[i].Distance > out.TopByDistance[j].Distance
	})
	if len(out.TopByDistance) > topVehicleCount {
		out.TopByDistance = out.TopByDistance[:topVehicleCount]
	}
	return out
}

// Trips summarizes trip counts, distance and duration, with a per-day series.
func Trips(ds Dataset) TripMetrics {
	out := TripMetrics{TotalTrips: len(ds.Trips), TripsPerDay: []TimeSeriesPoint{}}
	perDay := map[string]int{}
	for _, t := range ds.Trips {
		switch t.Status {
		case enums.TripStatusActive:
			out.ActiveTrips++
		case enums.TripStatusCompleted:
			out.CompletedTrips++
			out.TotalDistance += t.Distance()
			out.TotalDurationMinutes += durationMinutes(t)
		case enums.TripStatusCancelled:
			out.CancelledTrips++
		}
		perDay[t.StartTime.UTC().Format(time.DateOnly)]++
	}
	out.AverageDistance = ratio(float64(out.TotalDistance), float64(out.CompletedTrips), 2)
	out.AverageDurationMinutes = ratio(float64(out.TotalDurationMinutes), float64(out.CompletedTrips), 2)

	for day, count := range perDay {
		out.TripsPerDay = append(out.TripsPerDay, TimeSeriesPoint{Date: day, Value: count})
	}
	sort.Slice(out.TripsPerDay, func(i, j int) bool {
		return out.TripsPerDay[i].Date < out.TripsPerDay[j].Date
	})
	return out
}

// Fuel covers trips that recorded fuel. Efficiency is km per unit of fuel.
func Fuel(ds Dataset) FuelMetrics {
	out := FuelMetrics{TotalCost: decimal.Zero, CostPerKm: decimal.Zero, ByFuelType: []FuelTypeUsage{}}
	byType := map[enums.FuelType]*FuelTypeUsage{}
	var order []enums.FuelType
	for _, t := range ds.Trips {
		fuel := fuelOf(t)
		if fuel == 0 {
			continue
		}
		out.FuelledTrips++
		out.TotalFuel += fuel
		out.TotalCost = out.TotalCost.Add(costOf(t))
		out.TotalDistance += t.Distance()

		kind := enums.FuelType("unknown")
		if t.Vehicle != nil {
			kind = t.Vehicle.FuelType
		}
		usage, ok := byType[kind]
		if !ok {
			usage = &FuelTypeUsage{FuelType: kind, Cost: decimal.Zero}
			byType[kind] = usage
			order = append(order, kind)
		}
		usage.Fuel += fuel
		usage.Cost = usage.Cost.Add(costOf(t))
		usage.Distance += t.Distance()
	}
	out.AverageEfficiency = ratio(float64(out.TotalDistance), out.TotalFuel, 2)
	out.TotalFuel = round(out.TotalFuel, 2)
	if out.TotalDistance > 0 {
		out.CostPerKm = out.TotalCost.Div(decimal.NewFromInt(int64(out.TotalDistance))).Round(2)
	}
	for _, kind := range order {
		usage := *byType[kind]
		usage.Fuel = round(usage.Fuel, 2)
		out.ByFuelType = append(out.ByFuelType, usage)
	}
	return out
}

// Maintenance combines due counts as of now with services completed inside the window.
func Maintenance(ds Dataset, now time.Time, window *DateRange) MaintenanceMetrics {
	stats := maintenance.BuildStats(ds.Schedules, now)
	out := MaintenanceMetrics{
		Total:            stats.Total,
		Overdue:          stats.Overdue,
		DueSoon:          stats.DueSoon,
		Scheduled:        stats.Scheduled,
		Unscheduled:      stats.Unscheduled,
		ByType:           stats.ByType,
		CompletedCost:    decimal.Zero,
		EstimatedDueCost: stats.EstimatedDueCost,
	}
	for _, s := range ds.Schedules {
		if s.LastServiceDate == nil || !window.Contains(*s.LastServiceDate) {
			continue
		}
		out.CompletedInRange++
		if s.LastCost.Valid {
			out.CompletedCost = out.CompletedCost.Add(s.LastCost.Decimal)
		}
	}
	return out
}

// DepartmentBreakdown returns one row per department in dataset order, plus
// an Unassigned row when vehicles, users or trips carry no department.
func DepartmentBreakdown(ds Dataset) []DepartmentMetrics {
	rows := make([]DepartmentMetrics, 0, len(ds.Departments)+1)
	index := map[uint]int{}
	for _, d := range ds.Departments {
		id := d.ID
		index[d.ID] = len(rows)
		rows = append(rows, DepartmentMetrics{DepartmentID: &id, Code: d.Code, Name: d.Name, FuelCost: decimal.Zero})
	}
	unassigned := DepartmentMetrics{Name: unassignedLabel, FuelCost: decimal.Zero}
	bucket := func(id *uint) *DepartmentMetrics {
		if id != nil {
			if i, ok := index[*id]; ok {
				return &rows[i]
			}
		}
		return &unassigned
	}

	for _, v := range ds.Vehicles {
		b := bucket(v.DepartmentID)
		b.Vehicles++
		if v.Status.CountsAsUtilized() {
			b.ActiveVehicles++
		}
	}
	for _, u := range ds.Users {
		bucket(u.DepartmentID).Users++
	}
	for _, t := range ds.Trips {
		var dept *uint
		if t.Vehicle != nil {
			dept = t.Vehicle.DepartmentID
		}
		b := bucket(dept)
		b.Trips++
		b.Distance += t.Distance()
		b.FuelCost = b.FuelCost.Add(costOf(t))
	}

	if unassigned.Vehicles+unassigned.Users+unassigned.Trips > 0 {
		rows = append(rows, unassigned)
	}
	for i := range rows {
		rows[i].UtilizationRate = utilizationRate(rows[i].ActiveVehicles, rows[i].Vehicles)
	}
	return rows
}

// Utilization reports fleet activity per vehicle, busiest first.
func Utilization(ds Dataset) UtilizationMetrics {
	out := UtilizationMetrics{TotalVehicles: len(ds.Vehicles)}
	out.ActiveVehicles = activeCount(ds.Vehicles)
	out.UtilizationRate = utilizationRate(out.ActiveVehicles, out.TotalVehicles)
	out.ByVehicle = perVehicle(ds)

	for i, v := range ds.Vehicles {
		used := out.ByVehicle[i].Trips > 0
		if used {
			out.VehiclesWithTrips++
		}
		if !used && v.Status.CountsAsUtilized() {
			out.IdleVehicles++
		}
	}
	sort.SliceStable(out.ByVehicle, func(i, j int) bool {
		a, b := out.ByVehicle[i], out.ByVehicle[j]
		if a.Trips != b.Trips {
			return a.Trips > b.Trips
		}
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		return a.NumberPlate < b.NumberPlate
	})
	return out
}

// perVehicle returns usage rows aligned index-for-index with ds.Vehicles.
func perVehicle(ds Dataset) []VehicleUtilization {
	rows := make([]VehicleUtilization, len(ds.Vehicles))
	index := make(map[uint]int, len(ds.Vehicles))
	hours := make([]float64, len(ds.Vehicles))
	for i, v := range ds.Vehicles {
		index[v.ID] = i
		rows[i] = VehicleUtilization{
			VehicleID:   v.ID,
			NumberPlate: v.NumberPlate,
			Status:      v.Status,
			Department:  departmentLabel(v.Department),
		}
	}
	for _, t := range ds.Trips {
		i, ok := index[t.VehicleID]
		if !ok {
			continue
		}
		rows[i].Trips++
		rows[i].Distance += t.Distance()
		hours[i] += t.Duration().Hours()
	}
	for i := range rows {
		rows[i].HoursInUse = round(hours[i], 1)
	}
	return rows
}

// DriverBreakdown returns per-driver trip figures, longest distance first.
// Drivers with no trips in the window are included with zero values.
func DriverBreakdown(ds Dataset) []DriverMetrics {
	rows := []DriverMetrics{}
	index := map[uint]int{}
	fuel := []float64{}
	add := func(u *models.User, id uint) int {
		if i, ok := index[id]; ok {
			return i
		}
		row := DriverMetrics{DriverID: id, Name: driverName(u), Department: unassignedLabel, FuelCost: decimal.Zero}
		if u != nil {
			row.CoynoID = u.CoynoID
			row.Department = departmentLabel(u.Department)
		}
		index[id] = len(rows)
		rows = append(rows, row)
		fuel = append(fuel, 0)
		return len(rows) - 1
	}

	for i := range ds.Users {
		if ds.Users[i].UserRole == enums.UserRoleDriver {
			add(&ds.Users[i], ds.Users[i].ID)
		}
	}
	for _, t := range ds.Trips {
		i := add(t.Driver, t.DriverID)
		row := &rows[i]
		row.Trips++
		if t.Status == enums.TripStatusCompleted {
			row.CompletedTrips++
		}
		row.Distance += t.Distance()
		row.DurationMinutes += durationMinutes(t)
		row.FuelCost = row.FuelCost.Add(costOf(t))
		fuel[i] += fuelOf(t)
	}
	for i := range rows {
		rows[i].Fuel = round(fuel[i], 2)
		rows[i].AverageEfficiency = ratio(float64(rows[i].Distance), fuel[i], 2)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Distance != rows[j].Distance {
			return rows[i].Distance > rows[j].Distance
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
