package trips

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
)

const (
	msgTripNotActive      = "Trip is not active"
	msgTripNotFound       = "Trip not found"
	msgVehicleBusy        = "Vehicle already has an active trip"
	msgDriverBusy         = "Driver already has an active trip"
	msgVehicleUnavailable = "Vehicle is not available for trips"
)

// Service manages the trip lifecycle: open, edit while active, end or cancel.
type Service interface {
	List(ctx context.Context, caller Caller, filter ListFilter, page pagination.Params) ([]TripDTO, pagination.Meta, error)
	Get(ctx context.Context, caller Caller, id uint) (*TripDTO, error)
	Create(ctx context.Context, caller Caller, input CreateInput) (*TripDTO, error)
	Update(ctx context.Context, caller Caller, id uint, input UpdateInput) (*TripDTO, error)
	End(ctx context.Context, caller Caller, id uint, input EndInput) (*TripDTO, error)
	Cancel(ctx context.Context, caller Caller, id uint, reason *string) (*TripDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("trip repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, caller Caller, filter ListFilter, page pagination.Params) ([]TripDTO, pagination.Meta, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid trip status %q", filter.Status)
	}
	if caller.isDriver() {
		own := caller.UserID
		filter.DriverID = &own
	}
	rows, meta, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list trips")
	}
	out := make([]TripDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, meta, nil
}

func (s *service) Get(ctx context.Context, caller Caller, id uint) (*TripDTO, error) {
	trip, err := s.load(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}
	return FromModel(trip), nil
}

func (s *service) Create(ctx context.Context, caller Caller, input CreateInput) (*TripDTO, error) {
	driverID := caller.UserID
	if input.DriverID != nil && *input.DriverID != 0 {
		if caller.isDriver() && *input.DriverID != caller.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Drivers can only start their own trips")
		}
		driverID = *input.DriverID
	}
	if input.VehicleID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle_id is required")
	}
	if err := input.StartLocation.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_location")
	}
	startTime := s.now().UTC()
	if input.StartTime != nil {
		startTime = input.StartTime.UTC()
	}

	var tripID uint
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		vehicle, err := txRepo.FindVehicle(ctx, input.VehicleID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vehicle")
		}
		if !vehicle.IsActive || !vehicle.Status.CanStartTrip() {
			return pkgerrors.New(pkgerrors.CodeValidation, msgVehicleUnavailable).
				WithDetails(map[string]any{"status": vehicle.Status})
		}

		driver, err := txRepo.FindUser(ctx, driverID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "driver does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load driver")
		}
		if !driver.IsActive {
			return pkgerrors.New(pkgerrors.CodeValidation, "driver is inactive")
		}

		if err := ensureIdle(ctx, txRepo, "vehicle_id", vehicle.ID, msgVehicleBusy); err != nil {
			return err
		}
		if err := ensureIdle(ctx, txRepo, "driver_id", driver.ID, msgDriverBusy); err != nil {
			return err
		}

		startOdometer := vehicle.CurrentOdometer
		if input.StartOdometer != nil {
			if *input.StartOdometer < vehicle.CurrentOdometer {
				return pkgerrors.Newf(pkgerrors.CodeValidation, "start_odometer cannot be below the vehicle odometer (%d)", vehicle.CurrentOdometer)
			}
			startOdometer = *input.StartOdometer
		}

		trip := &models.Trip{
			VehicleID:     vehicle.ID,
			DriverID:      driver.ID,
			StartTime:     startTime,
			StartLocation: *input.StartLocation,
			StartOdometer: startOdometer,
			Purpose:       trimmed(input.Purpose),
			Notes:         trimmed(input.Notes),
			Status:        enums.TripStatusActive,
		}
		if err := txRepo.Create(ctx, trip); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgVehicleBusy)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create trip")
		}
		if err := txRepo.AdvanceOdometer(ctx, vehicle.ID, startOdometer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update vehicle odometer")
		}
		if input.PreTripInspection != nil {
			inspection := input.PreTripInspection.toModel(trip, caller.UserID, enums.InspectionTypePreTrip)
			if err := txRepo.CreateInspection(ctx, inspection); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record pre-trip inspection")
			}
		}
		tripID = trip.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, caller, tripID)
}

func (s *service) Update(ctx context.Context, caller Caller, id uint, input UpdateInput) (*TripDTO, error) {
	trip, err := s.load(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}
	if trip.Status != enums.TripStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
	}

	fields := map[string]any{}
	if input.StartLocation != nil {
		if err := input.StartLocation.Validate(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_location")
		}
		fields["start_location"] = *input.StartLocation
	}
	if input.EndLocation != nil {
		if err := input.EndLocation.Validate(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end_location")
		}
		fields["end_location"] = *input.EndLocation
	}
	if input.Purpose != nil {
		fields["purpose"] = trimmed(input.Purpose)
	}
	if input.Notes != nil {
		fields["notes"] = trimmed(input.Notes)
	}
	if input.FuelConsumed != nil {
		if *input.FuelConsumed < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fuel_consumed cannot be negative")
		}
		fields["fuel_consumed"] = *input.FuelConsumed
	}
	if input.FuelCost != nil {
		if input.FuelCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fuel_cost cannot be negative")
		}
		fields["fuel_cost"] = *input.FuelCost
	}
	if len(fields) == 0 {
		return FromModel(trip), nil
	}

	changed, err := s.repo.UpdateIfActive(ctx, trip.ID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update trip")
	}
	if !changed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
	}
	return s.Get(ctx, caller, trip.ID)
}

// End closes an active trip. The status guard lives in the UPDATE itself so a
// trip can only be completed once; a lost race reports "Trip is not active"
// and leaves the row untouched.
func (s *service) End(ctx context.Context, caller Caller, id uint, input EndInput) (*TripDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		trip, err := s.load(ctx, txRepo, caller, id)
		if err != nil {
			return err
		}
		if trip.Status != enums.TripStatusActive {
			return pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
		}
		if input.EndOdometer < trip.StartOdometer {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "end_odometer must be at least start_odometer (%d)", trip.StartOdometer)
		}
		if input.EndLocation != nil {
			if err := input.EndLocation.Validate(); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end_location")
			}
		}
		endTime := s.now().UTC()
		if input.EndTime != nil {
			endTime = input.EndTime.UTC()
		}
		if endTime.Before(trip.StartTime) {
			return pkgerrors.New(pkgerrors.CodeValidation, "end_time cannot be before start_time")
		}

		distance := input.EndOdometer - trip.StartOdometer
		fields := map[string]any{
			"status":              enums.TripStatusCompleted,
			"end_time":            endTime,
			"end_odometer":        input.EndOdometer,
			"calculated_distance": distance,
		}
		if input.EndLocation != nil {
			fields["end_location"] = *input.EndLocation
		}
		if input.FuelConsumed != nil {
			if *input.FuelConsumed < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "fuel_consumed cannot be negative")
			}
			fields["fuel_consumed"] = *input.FuelConsumed
		}
		if input.FuelCost != nil {
			if input.FuelCost.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "fuel_cost cannot be negative")
			}
			fields["fuel_cost"] = *input.FuelCost
		}
		if input.Notes != nil {
			fields["notes"] = trimmed(input.Notes)
		}

		changed, err := txRepo.UpdateIfActive(ctx, trip.ID, fields)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "end trip")
		}
		if !changed {
			return pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
		}
		if err := txRepo.AdvanceOdometer(ctx, trip.VehicleID, input.EndOdometer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update vehicle odometer")
		}
		if input.PostTripInspection != nil {
			inspection := input.PostTripInspection.toModel(trip, caller.UserID, enums.InspectionTypePostTrip)
			if err := txRepo.CreateInspection(ctx, inspection); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record post-trip inspection")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, caller, id)
}

func (s *service) Cancel(ctx context.Context, caller Caller, id uint, reason *string) (*TripDTO, error) {
	trip, err := s.load(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}
	if trip.Status != enums.TripStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
	}
	fields := map[string]any{
		"status":   enums.TripStatusCancelled,
		"end_time": s.now().UTC(),
	}
	if note := trimmed(reason); note != nil {
		fields["notes"] = note
	}
	changed, err := s.repo.UpdateIfActive(ctx, trip.ID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel trip")
	}
	if !changed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgTripNotActive)
	}
	return s.Get(ctx, caller, trip.ID)
}

// load hides other drivers' trips behind a 404.
func (s *service) load(ctx context.Context, r *Repository, caller Caller, id uint) (*models.Trip, error) {
	trip, err := r.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgTripNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load trip")
	}
	if caller.isDriver() && trip.DriverID != caller.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgTripNotFound)
	}
	return trip, nil
}

func ensureIdle(ctx context.Context, r *Repository, column string, id uint, message string) error {
	active, err := r.CountActive(ctx, column, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check active trips")
	}
	if active > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, message)
	}
	return nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
