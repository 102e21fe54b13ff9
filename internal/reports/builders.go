package reports

import (
	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	"github.com/angelmondragon/fleetdesk-backend/internal/maintenance"
	"github.com/shopspring/decimal"
)

// Table is a rendered-ready report body.
type Table struct {
	Headers []string
	Rows    []Row
}

type builder func(snap *analytics.Snapshot) Table

const (
	colPlate      = "Number Plate"
	colDepartment = "Department"
	colTrips      = "Trips"
	colDistance   = "Distance (km)"
	colFuel       = "Fuel Consumed (L)"
	colFuelCost   = "Fuel Cost"
	colEfficiency = "Efficiency (km/L)"
	colStatus     = "Status"
	totalLabel    = "TOTAL"
)

func fleetSummary(snap *analytics.Snapshot) Table {
	headers := []string{colPlate, "Make", "Model", "Year", "Fuel Type", colStatus, colDepartment, "Assigned Driver", "Odometer (km)", colTrips, colDistance}
	usage := usageByVehicle(snap)
	rows := make([]Row, 0, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		u := usage[v.ID]
		driver := ""
		if v.AssignedDriver != nil {
			driver = v.AssignedDriver.FullName()
		}
		rows = append(rows, Row{
			colPlate:          v.NumberPlate,
			"Make":            v.Make,
			"Model":           v.Model,
			"Year":            itoa(v.Year),
			"Fuel Type":       v.FuelType.String(),
			colStatus:         v.Status.String(),
			colDepartment:     u.Department,
			"Assigned Driver": driver,
			"Odometer (km)":   itoa(v.CurrentOdometer),
			colTrips:          itoa(u.Trips),
			colDistance:       itoa(u.Distance),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

func fuelConsumption(snap *analytics.Snapshot) Table {
	headers := []string{"Date", colPlate, "Driver", colDistance, colFuel, colFuelCost, colEfficiency}
	rows := []Row{}
	for _, t := range snap.Trips {
		if t.FuelConsumed == nil || *t.FuelConsumed <= 0 {
			continue
		}
		plate, driver := "", ""
		if t.Vehicle != nil {
			plate = t.Vehicle.NumberPlate
		}
		if t.Driver != nil {
			driver = t.Driver.FullName()
		}
		distance := t.Distance()
		rows = append(rows, Row{
			"Date":        date(t.StartTime),
			colPlate:      plate,
			"Driver":      driver,
			colDistance:   itoa(distance),
			colFuel:       float2(*t.FuelConsumed),
			colFuelCost:   optMoney(t.FuelCost),
			colEfficiency: float2(float64(distance) / *t.FuelConsumed),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

func maintenanceSchedule(snap *analytics.Snapshot) Table {
	headers := []string{colPlate, "Maintenance Type", "Description", "Last Service Date", "Last Service Km", "Next Due Date", "Next Due Km", "Due Status", "Estimated Cost"}
	rows := make([]Row, 0, len(snap.Schedules))
	for i := range snap.Schedules {
		s := maintenance.FromModel(&snap.Schedules[i], snap.Now)
		plate := ""
		if s.Vehicle != nil {
			plate = s.Vehicle.NumberPlate
		}
		rows = append(rows, Row{
			colPlate:            plate,
			"Maintenance Type":  s.MaintenanceType.String(),
			"Description":       optString(s.Description),
			"Last Service Date": optDate(s.LastServiceDate),
			"Last Service Km":   optInt(s.LastServiceKm),
			"Next Due Date":     optDate(s.NextDueDate),
			"Next Due Km":       optInt(s.NextDueKm),
			"Due Status":        s.DueStatus.String(),
			"Estimated Cost":    optMoney(s.EstimatedCost),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

func driverPerformance(snap *analytics.Snapshot) Table {
	headers := []string{"COYNO ID", "Driver", colDepartment, colTrips, "Completed Trips", colDistance, "Duration (min)", colFuel, colFuelCost, colEfficiency}
	drivers := analytics.DriverBreakdown(snap.Dataset)
	rows := make([]Row, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, Row{
			"COYNO ID":        d.CoynoID,
			"Driver":          d.Name,
			colDepartment:     d.Department,
			colTrips:          itoa(d.Trips),
			"Completed Trips": itoa(d.CompletedTrips),
			colDistance:       itoa(d.Distance),
			"Duration (min)":  itoa(d.DurationMinutes),
			colFuel:           float2(d.Fuel),
			colFuelCost:       money(d.FuelCost),
			colEfficiency:     float2(d.AverageEfficiency),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

// costAnalysis adds fuel spend of trips in the window to the cost of services
// completed in the window, per vehicle, with a closing TOTAL row.
func costAnalysis(snap *analytics.Snapshot) Table {
	headers := []string{colPlate, colDepartment, colTrips, colDistance, colFuelCost, "Maintenance Cost", "Total Cost", "Cost per Km"}
	usage := usageByVehicle(snap)

	fuel := map[uint]decimal.Decimal{}
	for _, t := range snap.Trips {
		if t.FuelCost.Valid {
			fuel[t.VehicleID] = fuel[t.VehicleID].Add(t.FuelCost.Decimal)
		}
	}
	service := map[uint]decimal.Decimal{}
	for _, s := range snap.Schedules {
		if s.LastServiceDate == nil || !s.LastCost.Valid || !snap.Window.Contains(*s.LastServiceDate) {
			continue
		}
		service[s.VehicleID] = service[s.VehicleID].Add(s.LastCost.Decimal)
	}

	var total struct {
		trips, distance int
		fuel, service   decimal.Decimal
	}
	rows := make([]Row, 0, len(snap.Vehicles)+1)
	for _, v := range snap.Vehicles {
		u := usage[v.ID]
		rows = append(rows, costRow(v.NumberPlate, u.Department, u.Trips, u.Distance, fuel[v.ID], service[v.ID]))
		total.trips += u.Trips
		total.distance += u.Distance
		total.fuel = total.fuel.Add(fuel[v.ID])
		total.service = total.service.Add(service[v.ID])
	}
	rows = append(rows, costRow(totalLabel, "", total.trips, total.distance, total.fuel, total.service))
	return Table{Headers: headers, Rows: rows}
}

func costRow(plate, department string, trips, distance int, fuel, service decimal.Decimal) Row {
	sum := fuel.Add(service)
	perKm := decimal.Zero
	if distance > 0 {
		perKm = sum.Div(decimal.NewFromInt(int64(distance)))
	}
	return Row{
		colPlate:           plate,
		colDepartment:      department,
		colTrips:           itoa(trips),
		colDistance:        itoa(distance),
		colFuelCost:        money(fuel),
		"Maintenance Cost": money(service),
		"Total Cost":       money(sum),
		"Cost per Km":      money(perKm),
	}
}

func utilization(snap *analytics.Snapshot) Table {
	headers := []string{colPlate, colStatus, colDepartment, colTrips, colDistance, "Hours in Use"}
	metrics := analytics.Utilization(snap.Dataset)
	rows := make([]Row, 0, len(metrics.ByVehicle))
	for _, v := range metrics.ByVehicle {
		rows = append(rows, Row{
			colPlate:       v.NumberPlate,
			colStatus:      v.Status.String(),
			colDepartment:  v.Department,
			colTrips:       itoa(v.Trips),
			colDistance:    itoa(v.Distance),
			"Hours in Use": float1(v.HoursInUse),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

func usageByVehicle(snap *analytics.Snapshot) map[uint]analytics.VehicleUtilization {
	metrics := analytics.Utilization(snap.Dataset)
	out := make(map[uint]analytics.VehicleUtilization, len(metrics.ByVehicle))
	for _, u := range metrics.ByVehicle {
		out[u.VehicleID] = u
	}
	return out
}
