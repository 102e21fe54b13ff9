package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/trips"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
	"github.com/angelmondragon/fleetdesk-backend/pkg/types"
)

type createTripRequest struct {
	VehicleID         uint                   `json:"vehicle_id" validate:"required"`
	DriverID          *uint                  `json:"driver_id"`
	StartTime         *string                `json:"start_time"`
	StartLocation     *types.Location        `json:"start_location"`
	StartOdometer     *int                   `json:"start_odometer" validate:"omitempty,gte=0"`
	Purpose           *string                `json:"purpose" validate:"omitempty,max=255"`
	Notes             *string                `json:"notes"`
	PreTripInspection *trips.InspectionInput `json:"pre_trip_inspection"`
}

func (r createTripRequest) toInput() (trips.CreateInput, error) {
	start, err := validators.ParseTimeField("start_time", r.StartTime)
	if err != nil {
		return trips.CreateInput{}, err
	}
	return trips.CreateInput{
		VehicleID:         r.VehicleID,
		DriverID:          r.DriverID,
		StartTime:         start,
		StartLocation:     r.StartLocation,
		StartOdometer:     r.StartOdometer,
		Purpose:           validators.OptionalString(r.Purpose, 255),
		Notes:             validators.OptionalString(r.Notes, 0),
		PreTripInspection: r.PreTripInspection,
	}, nil
}

type updateTripRequest struct {
	StartLocation *types.Location  `json:"start_location"`
	EndLocation   *types.Location  `json:"end_location"`
	Purpose       *string          `json:"purpose" validate:"omitempty,max=255"`
	Notes         *string          `json:"notes"`
	FuelConsumed  *float64         `json:"fuel_consumed" validate:"omitempty,gte=0"`
	FuelCost      *decimal.Decimal `json:"fuel_cost"`
}

type endTripRequest struct {
	EndOdometer        *int                   `json:"end_odometer" validate:"required,gte=0"`
	EndLocation        *types.Location        `json:"end_location"`
	EndTime            *string                `json:"end_time"`
	FuelConsumed       *float64               `json:"fuel_consumed" validate:"omitempty,gte=0"`
	FuelCost           *decimal.Decimal       `json:"fuel_cost"`
	Notes              *string                `json:"notes"`
	PostTripInspection *trips.InspectionInput `json:"post_trip_inspection"`
}

func (r endTripRequest) toInput() (trips.EndInput, error) {
	end, err := validators.ParseTimeField("end_time", r.EndTime)
	if err != nil {
		return trips.EndInput{}, err
	}
	return trips.EndInput{
		EndOdometer:        *r.EndOdometer,
		EndLocation:        r.EndLocation,
		EndTime:            end,
		FuelConsumed:       r.FuelConsumed,
		FuelCost:           r.FuelCost,
		Notes:              validators.OptionalString(r.Notes, 0),
		PostTripInspection: r.PostTripInspection,
	}, nil
}

type cancelTripRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=255"`
}

func tripCaller(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (trips.Caller, bool) {
	p, ok := requirePrincipal(w, r, logg)
	if !ok {
		return trips.Caller{}, false
	}
	return trips.Caller{UserID: p.UserID, Role: p.Role}, true
}

// TripsList returns trips; drivers only ever see their own.
func TripsList(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := trips.ListFilter{
			Status: enums.TripStatus(validators.SanitizeString(r.URL.Query().Get("status"), 20)),
		}
		if filter.VehicleID, err = validators.ParseQueryUint(r, "vehicle_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.DriverID, err = validators.ParseQueryUint(r, "driver_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.From, err = validators.ParseQueryTime(r, "start_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.To, err = validators.ParseQueryTime(r, "end_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, meta, err := svc.List(r.Context(), caller, filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, rows, meta)
	}
}

func TripsGet(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		trip, err := svc.Get(r.Context(), caller, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trip)
	}
}

func TripsCreate(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		var body createTripRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		trip, err := svc.Create(r.Context(), caller, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, trip)
	}
}

func TripsUpdate(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateTripRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		trip, err := svc.Update(r.Context(), caller, id, trips.UpdateInput{
			StartLocation: body.StartLocation,
			EndLocation:   body.EndLocation,
			Purpose:       validators.OptionalString(body.Purpose, 255),
			Notes:         body.Notes,
			FuelConsumed:  body.FuelConsumed,
			FuelCost:      body.FuelCost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trip)
	}
}

// TripsEnd completes an active trip.
func TripsEnd(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body endTripRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		trip, err := svc.End(r.Context(), caller, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trip)
	}
}

func TripsCancel(svc trips.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "trips")
			return
		}
		caller, ok := tripCaller(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body cancelTripRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		trip, err := svc.Cancel(r.Context(), caller, id, validators.OptionalString(body.Reason, 255))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trip)
	}
}
