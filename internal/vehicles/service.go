package vehicles

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
	minVehicleYear   = 1900
	maxPlateLength   = 20
	maxVINLength     = 17
	retiredReason    = "Vehicle retired"
	registeredReason = "Vehicle registered"
)

var conflictMessages = map[string]string{
	"number_plate": "Vehicle with this number plate already exists",
	"vin":          "Vehicle with this VIN already exists",
	"qr_code":      "Vehicle with this QR code already exists",
}

// Service exposes fleet vehicle management. Status changes are audited in
// the vehicle status log.
type Service interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]VehicleDTO, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*VehicleDTO, error)
	Create(ctx context.Context, actorID uint, input CreateInput) (*VehicleDTO, error)
	Update(ctx context.Context, actorID, id uint, input UpdateInput) (*VehicleDTO, error)
	Delete(ctx context.Context, actorID, id uint) error
	History(ctx context.Context, id uint) (*HistoryDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]VehicleDTO, pagination.Meta, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", filter.Status)
	}
	if filter.FuelType != "" && !filter.FuelType.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid fuel type %q", filter.FuelType)
	}
	rows, meta, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vehicles")
	}
	out := make([]VehicleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, meta, nil
}

func (s *service) Get(ctx context.Context, id uint) (*VehicleDTO, error) {
	vehicle, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return FromModel(vehicle), nil
}

func (s *service) Create(ctx context.Context, actorID uint, input CreateInput) (*VehicleDTO, error) {
	vehicle := &models.Vehicle{
		NumberPlate:     normalizePlate(input.NumberPlate),
		VIN:             normalizeOptional(input.VIN, true),
		QRCode:          normalizeOptional(input.QRCode, false),
		Make:            strings.TrimSpace(input.Make),
		Model:           strings.TrimSpace(input.Model),
		Year:            input.Year,
		Color:           normalizeOptional(input.Color, false),
		FuelType:        enums.FuelTypePetrol,
		Status:          enums.VehicleStatusAvailable,
		CurrentOdometer: input.CurrentOdometer,
		FuelCapacity:    input.FuelCapacity,
		IsActive:        true,
	}
	if input.FuelType != "" {
		fuel, err := enums.ParseFuelType(input.FuelType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fuel type")
		}
		vehicle.FuelType = fuel
	}
	if input.Status != "" {
		status, err := enums.ParseVehicleStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle status")
		}
		vehicle.Status = status
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "make and model are required")
	}
	if err := s.validate(vehicle); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, vehicle); err != nil {
		return nil, err
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := s.resolveRelations(ctx, txRepo, vehicle, input.DepartmentID, input.AssignedDriverID); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, vehicle); err != nil {
			return conflictOr(err, "create vehicle")
		}
		return txRepo.AppendStatusLog(ctx, &models.VehicleStatusLog{
			VehicleID:       vehicle.ID,
			NewStatus:       vehicle.Status,
			ChangedBy:       actorRef(actorID),
			OdometerReading: &vehicle.CurrentOdometer,
			Reason:          strPtr(registeredReason),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, vehicle.ID)
}

func (s *service) Update(ctx context.Context, actorID, id uint, input UpdateInput) (*VehicleDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		vehicle, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		previous := vehicle.Status

		if err := applyUpdate(vehicle, input); err != nil {
			return err
		}
		if err := s.validate(vehicle); err != nil {
			return err
		}
		if err := s.ensureUniqueWith(ctx, txRepo, vehicle); err != nil {
			return err
		}
		if input.DepartmentID != nil || input.AssignedDriverID != nil {
			if err := s.resolveRelations(ctx, txRepo, vehicle, input.DepartmentID, input.AssignedDriverID); err != nil {
				return err
			}
		}
		if err := txRepo.Save(ctx, vehicle); err != nil {
			return conflictOr(err, "update vehicle")
		}

		if vehicle.Status == previous {
			return nil
		}
		prev := previous
		return txRepo.AppendStatusLog(ctx, &models.VehicleStatusLog{
			VehicleID:       vehicle.ID,
			PreviousStatus:  &prev,
			NewStatus:       vehicle.Status,
			ChangedBy:       actorRef(actorID),
			OdometerReading: &vehicle.CurrentOdometer,
			Reason:          normalizeOptional(input.Reason, false),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete retires the vehicle. Rows are kept for trip and audit history.
func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		vehicle, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		busy, err := txRepo.HasActiveTrip(ctx, vehicle.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check active trips")
		}
		if busy {
			return pkgerrors.New(pkgerrors.CodeConflict, "Vehicle has an active trip")
		}

		prev := vehicle.Status
		vehicle.IsActive = false
		vehicle.Status = enums.VehicleStatusRetired
		if err := txRepo.Save(ctx, vehicle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retire vehicle")
		}
		return txRepo.AppendStatusLog(ctx, &models.VehicleStatusLog{
			VehicleID:       vehicle.ID,
			PreviousStatus:  &prev,
			NewStatus:       enums.VehicleStatusRetired,
			ChangedBy:       actorRef(actorID),
			OdometerReading: &vehicle.CurrentOdometer,
			Reason:          strPtr(retiredReason),
		})
	})
}

func (s *service) History(ctx context.Context, id uint) (*HistoryDTO, error) {
	vehicle, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.StatusLogs(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load status logs")
	}
	trips, err := s.repo.RecentTrips(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recent trips")
	}
	schedules, err := s.repo.Schedules(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load maintenance schedules")
	}

	out := &HistoryDTO{
		Vehicle:              FromModel(vehicle),
		StatusLogs:           make([]StatusLogDTO, 0, len(logs)),
		RecentTrips:          make([]TripSummary, 0, len(trips)),
		MaintenanceSchedules: make([]ScheduleSummary, 0, len(schedules)),
	}
	for _, l := range logs {
		out.StatusLogs = append(out.StatusLogs, statusLogFromModel(l))
	}
	for _, t := range trips {
		out.RecentTrips = append(out.RecentTrips, tripSummaryFromModel(t))
	}
	for _, m := range schedules {
		out.MaintenanceSchedules = append(out.MaintenanceSchedules, scheduleSummaryFromModel(m))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, r *Repository, id uint) (*models.Vehicle, error) {
	vehicle, err := r.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vehicle")
	}
	return vehicle, nil
}

func (s *service) validate(v *models.Vehicle) error {
	switch {
	case v.NumberPlate == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "number plate is required")
	case len(v.NumberPlate) > maxPlateLength:
		return pkgerrors.Newf(pkgerrors.CodeValidation, "number plate must be at most %d characters", maxPlateLength)
	case v.VIN != nil && len(*v.VIN) > maxVINLength:
		return pkgerrors.Newf(pkgerrors.CodeValidation, "VIN must be at most %d characters", maxVINLength)
	case v.CurrentOdometer < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "odometer cannot be negative")
	case v.FuelCapacity != nil && *v.FuelCapacity <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "fuel capacity must be positive")
	}
	maxYear := s.now().Year() + 1
	if v.Year < minVehicleYear || v.Year > maxYear {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "year must be between %d and %d", minVehicleYear, maxYear)
	}
	return nil
}

func (s *service) ensureUnique(ctx context.Context, v *models.Vehicle) error {
	return s.ensureUniqueWith(ctx, s.repo, v)
}

func (s *service) ensureUniqueWith(ctx context.Context, r *Repository, v *models.Vehicle) error {
	column, err := r.FindConflict(ctx, v.NumberPlate, v.VIN, v.QRCode, v.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check vehicle identifiers")
	}
	if column != "" {
		return pkgerrors.New(pkgerrors.CodeConflict, conflictMessages[column]).WithDetails(map[string]string{"field": column})
	}
	return nil
}

// resolveRelations validates and sets the department and driver. A zero id
// clears the relation.
func (s *service) resolveRelations(ctx context.Context, r *Repository, v *models.Vehicle, departmentID, driverID *uint) error {
	if departmentID != nil {
		if *departmentID == 0 {
			v.DepartmentID, v.Department = nil, nil
		} else {
			dept, err := r.FindDepartment(ctx, *departmentID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.New(pkgerrors.CodeValidation, "department does not exist")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load department")
			}
			if !dept.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation, "department is inactive")
			}
			v.DepartmentID, v.Department = &dept.ID, dept
		}
	}
	if driverID != nil {
		if *driverID == 0 {
			v.AssignedDriverID, v.AssignedDriver = nil, nil
		} else {
			driver, err := r.FindUser(ctx, *driverID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.New(pkgerrors.CodeValidation, "assigned driver does not exist")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load driver")
			}
			if !driver.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation, "assigned driver is inactive")
			}
			v.AssignedDriverID, v.AssignedDriver = &driver.ID, driver
		}
	}
	return nil
}

func applyUpdate(v *models.Vehicle, input UpdateInput) error {
	if input.NumberPlate != nil {
		v.NumberPlate = normalizePlate(*input.NumberPlate)
	}
	if input.VIN != nil {
		v.VIN = normalizeOptional(input.VIN, true)
	}
	if input.QRCode != nil {
		v.QRCode = normalizeOptional(input.QRCode, false)
	}
	if input.Make != nil {
		if strings.TrimSpace(*input.Make) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "make is required")
		}
		v.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		if strings.TrimSpace(*input.Model) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "model is required")
		}
		v.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		v.Year = *input.Year
	}
	if input.Color != nil {
		v.Color = normalizeOptional(input.Color, false)
	}
	if input.FuelType != nil {
		fuel, err := enums.ParseFuelType(*input.FuelType)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fuel type")
		}
		v.FuelType = fuel
	}
	if input.Status != nil {
		status, err := enums.ParseVehicleStatus(*input.Status)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle status")
		}
		v.Status = status
	}
	if input.CurrentOdometer != nil {
		if *input.CurrentOdometer < v.CurrentOdometer {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "odometer cannot decrease below %d", v.CurrentOdometer)
		}
		v.CurrentOdometer = *input.CurrentOdometer
	}
	if input.FuelCapacity != nil {
		v.FuelCapacity = input.FuelCapacity
	}
	return nil
}

// conflictOr maps a unique violation that slipped past the pre-check to 409.
func conflictOr(err error, action string) error {
	for column, message := range conflictMessages {
		if db.IsUniqueViolation(err, "vehicles_"+column+"_key") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, message)
		}
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Vehicle identifiers already in use")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func normalizeOptional(value *string, upper bool) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	if upper {
		trimmed = strings.ToUpper(trimmed)
	}
	return &trimmed
}

func actorRef(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func strPtr(v string) *string { return &v }
