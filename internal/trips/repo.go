package trips

import (
	"context"

	"github.com/angelmondragon/fleetdesk-backend/internal/repo"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes trip persistence operations.
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

func (r *Repository) Create(ctx context.Context, trip *models.Trip) error {
	return r.base.DB(ctx).Omit(clause.Associations).Create(trip).Error
}

// FindByID loads a trip with vehicle, driver and inspections.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.base.DB(ctx).
		Preload("Vehicle").
		Preload("Driver").
		Preload("Inspections", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&trip, id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Trip, pagination.Meta, error) {
	query := r.base.DB(ctx).Model(&models.Trip{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	query = repo.Within(query, "start_time", filter.From, filter.To)

	var rows []models.Trip
	meta, err := repo.Page(query, page, "start_time DESC, id DESC", &rows, "Vehicle", "Driver")
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rows, meta, nil
}

// CountActive counts active trips on the given column ("vehicle_id" or "driver_id").
func (r *Repository) CountActive(ctx context.Context, column string, id uint) (int64, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Trip{}).
		Where(column+" = ? AND status = ?", id, enums.TripStatusActive).
		Count(&count).Error
	return count, err
}

// UpdateIfActive applies fields only while the trip is still active and
// reports whether a row changed.
func (r *Repository) UpdateIfActive(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	res := r.base.DB(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND status = ?", id, enums.TripStatusActive).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) CreateInspection(ctx context.Context, inspection *models.VehicleInspection) error {
	return r.base.DB(ctx).Create(inspection).Error
}

func (r *Repository) FindVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.base.DB(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *Repository) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AdvanceOdometer moves the vehicle odometer forward; lower readings are ignored.
func (r *Repository) AdvanceOdometer(ctx context.Context, vehicleID uint, reading int) error {
	return r.base.DB(ctx).
		Model(&models.Vehicle{}).
		Where("id = ? AND current_odometer < ?", vehicleID, reading).
		Update("current_odometer", reading).Error
}
