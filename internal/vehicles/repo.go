package vehicles

import (
	"context"

	"github.com/angelmondragon/fleetdesk-backend/internal/repo"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const recentTripLimit = 10

// Repository exposes vehicle persistence operations.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func (r *Repository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.base.DB(ctx).Omit(clause.Associations).Create(vehicle).Error
}

// FindByID loads a vehicle with its department and assigned driver.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.base.DB(ctx).
		Preload("Department").
		Preload("AssignedDriver").
		First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindConflict returns the name of the first unique column already used by
// another vehicle, or "" when the identifiers are free.
func (r *Repository) FindConflict(ctx context.Context, plate string, vin, qrCode *string, excludeID uint) (string, error) {
	checks := []struct {
		column string
		value  *string
	}{
		{"number_plate", &plate},
		{"vin", vin},
		{"qr_code", qrCode},
	}
	for _, check := range checks {
		if check.value == nil || *check.value == "" {
			continue
		}
		var count int64
		query := r.base.DB(ctx).Model(&models.Vehicle{}).Where(check.column+" = ?", *check.value)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return check.column, nil
		}
	}
	return "", nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Vehicle, pagination.Meta, error) {
	query := r.base.DB(ctx).Model(&models.Vehicle{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FuelType != "" {
		query = query.Where("fuel_type = ?", filter.FuelType)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.AssignedDriverID != nil {
		query = query.Where("assigned_driver_id = ?", *filter.AssignedDriverID)
	}
	query = repo.Search(query, filter.Search, "number_plate", "make", "model")

	var rows []models.Vehicle
	meta, err := repo.Page(query, page, "created_at DESC, id DESC", &rows, "Department", "AssignedDriver")
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rows, meta, nil
}

// Save persists scalar columns without touching loaded associations.
func (r *Repository) Save(ctx context.Context, vehicle *models.Vehicle) error {
	return r.base.DB(ctx).Omit(clause.Associations).Save(vehicle).Error
}

func (r *Repository) AppendStatusLog(ctx context.Context, entry *models.VehicleStatusLog) error {
	return r.base.DB(ctx).Create(entry).Error
}

func (r *Repository) StatusLogs(ctx context.Context, vehicleID uint) ([]models.VehicleStatusLog, error) {
	var rows []models.VehicleStatusLog
	err := r.base.DB(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) RecentTrips(ctx context.Context, vehicleID uint) ([]models.Trip, error) {
	var rows []models.Trip
	err := r.base.DB(ctx).
		Preload("Driver").
		Where("vehicle_id = ?", vehicleID).
		Order("start_time DESC, id DESC").
		Limit(recentTripLimit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Schedules(ctx context.Context, vehicleID uint) ([]models.MaintenanceSchedule, error) {
	var rows []models.MaintenanceSchedule
	err := r.base.DB(ctx).
		Where("vehicle_id = ? AND is_active = ?", vehicleID, true).
		Order("next_due_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// HasActiveTrip reports whether the vehicle is currently out on a trip.
func (r *Repository) HasActiveTrip(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Trip{}).
		Where("vehicle_id = ? AND status = ?", vehicleID, enums.TripStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) FindDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.base.DB(ctx).First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
