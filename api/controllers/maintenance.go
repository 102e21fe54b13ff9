package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/maintenance"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type createScheduleRequest struct {
	VehicleID       uint             `json:"vehicle_id" validate:"required"`
	MaintenanceType string           `json:"maintenance_type" validate:"required"`
	Description     *string          `json:"description"`
	IntervalKm      *int             `json:"interval_km" validate:"omitempty,gt=0"`
	IntervalMonths  *int             `json:"interval_months" validate:"omitempty,gt=0"`
	LastServiceDate *string          `json:"last_service_date"`
	LastServiceKm   *int             `json:"last_service_km" validate:"omitempty,gte=0"`
	NextDueDate     *string          `json:"next_due_date"`
	NextDueKm       *int             `json:"next_due_km" validate:"omitempty,gte=0"`
	EstimatedCost   *decimal.Decimal `json:"estimated_cost"`
	Notes           *string          `json:"notes"`
}

func (r createScheduleRequest) toInput() (maintenance.CreateInput, error) {
	last, err := validators.ParseTimeField("last_service_date", r.LastServiceDate)
	if err != nil {
		return maintenance.CreateInput{}, err
	}
	next, err := validators.ParseTimeField("next_due_date", r.NextDueDate)
	if err != nil {
		return maintenance.CreateInput{}, err
	}
	return maintenance.CreateInput{
		VehicleID:       r.VehicleID,
		MaintenanceType: r.MaintenanceType,
		Description:     validators.OptionalString(r.Description, 0),
		IntervalKm:      r.IntervalKm,
		IntervalMonths:  r.IntervalMonths,
		LastServiceDate: last,
		LastServiceKm:   r.LastServiceKm,
		NextDueDate:     next,
		NextDueKm:       r.NextDueKm,
		EstimatedCost:   r.EstimatedCost,
		Notes:           validators.OptionalString(r.Notes, 0),
	}, nil
}

type updateScheduleRequest struct {
	MaintenanceType *string          `json:"maintenance_type"`
	Description     *string          `json:"description"`
	IntervalKm      *int             `json:"interval_km" validate:"omitempty,gt=0"`
	IntervalMonths  *int             `json:"interval_months" validate:"omitempty,gt=0"`
	LastServiceDate *string          `json:"last_service_date"`
	LastServiceKm   *int             `json:"last_service_km" validate:"omitempty,gte=0"`
	NextDueDate     *string          `json:"next_due_date"`
	NextDueKm       *int             `json:"next_due_km" validate:"omitempty,gte=0"`
	EstimatedCost   *decimal.Decimal `json:"estimated_cost"`
	Notes           *string          `json:"notes"`
}

func (r updateScheduleRequest) toInput() (maintenance.UpdateInput, error) {
	last, err := validators.ParseTimeField("last_service_date", r.LastServiceDate)
	if err != nil {
		return maintenance.UpdateInput{}, err
	}
	next, err := validators.ParseTimeField("next_due_date", r.NextDueDate)
	if err != nil {
		return maintenance.UpdateInput{}, err
	}
	return maintenance.UpdateInput{
		MaintenanceType: r.MaintenanceType,
		Description:     r.Description,
		IntervalKm:      r.IntervalKm,
		IntervalMonths:  r.IntervalMonths,
		LastServiceDate: last,
		LastServiceKm:   r.LastServiceKm,
		NextDueDate:     next,
		NextDueKm:       r.NextDueKm,
		EstimatedCost:   r.EstimatedCost,
		Notes:           r.Notes,
	}, nil
}

type completeScheduleRequest struct {
	ServiceDate *string          `json:"service_date"`
	ServiceKm   *int             `json:"service_km" validate:"omitempty,gte=0"`
	Cost        *decimal.Decimal `json:"cost"`
	Notes       *string          `json:"notes"`
}

func MaintenanceList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicleID, err := validators.ParseQueryUint(r, "vehicle_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := r.URL.Query()
		filter := maintenance.ListFilter{
			VehicleID:       vehicleID,
			MaintenanceType: enums.MaintenanceType(validators.SanitizeString(q.Get("maintenance_type"), 30)),
			DueStatus:       enums.DueStatus(validators.SanitizeString(q.Get("due_status"), 20)),
		}
		rows, meta, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, rows, meta)
	}
}

func MaintenanceGet(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

func MaintenanceCreate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		var body createScheduleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, schedule)
	}
}

func MaintenanceUpdate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateScheduleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

func MaintenanceDelete(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, message{Message: "Maintenance schedule deleted successfully"})
	}
}

// MaintenanceComplete records a performed service and rolls the schedule forward.
func MaintenanceComplete(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body completeScheduleRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		serviceDate, err := validators.ParseTimeField("service_date", body.ServiceDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		schedule, err := svc.Complete(r.Context(), id, maintenance.CompleteInput{
			ServiceDate: serviceDate,
			ServiceKm:   body.ServiceKm,
			Cost:        body.Cost,
			Notes:       validators.OptionalString(body.Notes, 0),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

func MaintenanceStats(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "maintenance")
			return
		}
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
