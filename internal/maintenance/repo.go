package maintenance

import (
	"context"

	"github.com/angelmondragon/fleetdesk-backend/internal/repo"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes maintenance schedule persistence operations.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, schedule *models.MaintenanceSchedule) error {
	return r.base.DB(ctx).Omit(clause.Associations).Create(schedule).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.MaintenanceSchedule, error) {
	var schedule models.MaintenanceSchedule
	if err := r.base.DB(ctx).Preload("Vehicle").First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *Repository) scoped(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.base.DB(ctx).
		Model(&models.MaintenanceSchedule{}).
		Where("is_active = ?", true)
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.MaintenanceType != "" {
		query = query.Where("maintenance_type = ?", filter.MaintenanceType)
	}
	return query
}

// Page returns one page of active schedules ordered by next due date.
func (r *Repository) Page(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.MaintenanceSchedule, pagination.Meta, error) {
	var rows []models.MaintenanceSchedule
	meta, err := repo.Page(r.scoped(ctx, filter), page, "next_due_date ASC, id ASC", &rows, "Vehicle")
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rows, meta, nil
}

// All returns every active schedule matching the filter. Due status is
// computed in memory, so callers filtering on it load the full set.
func (r *Repository) All(ctx context.Context, filter ListFilter) ([]models.MaintenanceSchedule, error) {
	var rows []models.MaintenanceSchedule
	err := r.scoped(ctx, filter).Preload("Vehicle").Order("next_due_date ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) Save(ctx context.Context, schedule *models.MaintenanceSchedule) error {
	return r.base.DB(ctx).Omit(clause.Associations).Save(schedule).Error
}

func (r *Repository) FindVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.base.DB(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}
