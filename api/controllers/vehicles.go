package controllers

import (
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/vehicles"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type createVehicleRequest struct {
	NumberPlate      string   `json:"number_plate" validate:"required,max=20"`
	VIN              *string  `json:"vin" validate:"omitempty,max=17"`
	QRCode           *string  `json:"qr_code" validate:"omitempty,max=100"`
	Make             string   `json:"make" validate:"required,max=50"`
	Model            string   `json:"model" validate:"required,max=50"`
	Year             int      `json:"year" validate:"required"`
	Color            *string  `json:"color" validate:"omitempty,max=30"`
	FuelType         string   `json:"fuel_type"`
	Status           string   `json:"status"`
	CurrentOdometer  int      `json:"current_odometer" validate:"gte=0"`
	FuelCapacity     *float64 `json:"fuel_capacity" validate:"omitempty,gt=0"`
	DepartmentID     *uint    `json:"department_id"`
	AssignedDriverID *uint    `json:"assigned_driver_id"`
}

func (r createVehicleRequest) toInput() vehicles.CreateInput {
	return vehicles.CreateInput{
		NumberPlate:      r.NumberPlate,
		VIN:              r.VIN,
		QRCode:           r.QRCode,
		Make:             validators.SanitizeString(r.Make, 50),
		Model:            validators.SanitizeString(r.Model, 50),
		Year:             r.Year,
		Color:            validators.OptionalString(r.Color, 30),
		FuelType:         r.FuelType,
		Status:           r.Status,
		CurrentOdometer:  r.CurrentOdometer,
		FuelCapacity:     r.FuelCapacity,
		DepartmentID:     r.DepartmentID,
		AssignedDriverID: r.AssignedDriverID,
	}
}

type updateVehicleRequest struct {
	NumberPlate      *string  `json:"number_plate" validate:"omitempty,min=1,max=20"`
	VIN              *string  `json:"vin" validate:"omitempty,max=17"`
	QRCode           *string  `json:"qr_code" validate:"omitempty,max=100"`
	Make             *string  `json:"make" validate:"omitempty,min=1,max=50"`
	Model            *string  `json:"model" validate:"omitempty,min=1,max=50"`
	Year             *int     `json:"year"`
	Color            *string  `json:"color" validate:"omitempty,max=30"`
	FuelType         *string  `json:"fuel_type"`
	Status           *string  `json:"status"`
	CurrentOdometer  *int     `json:"current_odometer" validate:"omitempty,gte=0"`
	FuelCapacity     *float64 `json:"fuel_capacity" validate:"omitempty,gt=0"`
	DepartmentID     *uint    `json:"department_id"`
	AssignedDriverID *uint    `json:"assigned_driver_id"`
	Reason           *string  `json:"reason" validate:"omitempty,max=255"`
}

func (r updateVehicleRequest) toInput() vehicles.UpdateInput {
	return vehicles.UpdateInput{
		NumberPlate:      r.NumberPlate,
		VIN:              r.VIN,
		QRCode:           r.QRCode,
		Make:             r.Make,
		Model:            r.Model,
		Year:             r.Year,
		Color:            r.Color,
		FuelType:         r.FuelType,
		Status:           r.Status,
		CurrentOdometer:  r.CurrentOdometer,
		FuelCapacity:     r.FuelCapacity,
		DepartmentID:     r.DepartmentID,
		AssignedDriverID: r.AssignedDriverID,
		Reason:           validators.OptionalString(r.Reason, 255),
	}
}

func VehiclesList(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		departmentID, err := validators.ParseQueryUint(r, "department_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		driverID, err := validators.ParseQueryUint(r, "assigned_driver_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		filter := vehicles.ListFilter{
			Status:           enums.VehicleStatus(validators.SanitizeString(q.Get("status"), 20)),
			FuelType:         enums.FuelType(validators.SanitizeString(q.Get("fuel_type"), 20)),
			DepartmentID:     departmentID,
			AssignedDriverID: driverID,
			Search:           validators.SanitizeString(q.Get("search"), 100),
			IncludeInactive:  includeInactive != nil && *includeInactive,
		}
		rows, meta, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, rows, meta)
	}
}

func VehiclesGet(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

// VehiclesHistory returns status changes, recent trips and schedules.
func VehiclesHistory(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		history, err := svc.History(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

func VehiclesCreate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}
		var body createVehicleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Create(r.Context(), p.UserID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

func VehiclesUpdate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateVehicleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Update(r.Context(), p.UserID, id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

func VehiclesDelete(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "vehicles")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), p.UserID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, message{Message: "Vehicle deleted successfully"})
	}
}
