package analytics

import (
	"context"

	"github.com/angelmondragon/fleetdesk-backend/internal/repo"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads the scoped collections the aggregators fold over.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) Vehicles(ctx context.Context, scope Scope) ([]models.Vehicle, error) {
	query := r.base.DB(ctx).Model(&models.Vehicle{}).Where("is_active = ?", true)
	if scope.DepartmentID != nil {
		query = query.Where("department_id = ?", *scope.DepartmentID)
	}
	var rows []models.Vehicle
	err := query.Preload("Department").Preload("AssignedDriver").Order("number_plate ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) Trips(ctx context.Context, scope Scope, window *DateRange) ([]models.Trip, error) {
	query := r.base.DB(ctx).Model(&models.Trip{})
	if window != nil {
		query = repo.Within(query, "start_time", &window.Start, &window.End)
	}
	if scope.DepartmentID != nil {
		query = query.Where("vehicle_id IN (?)",
			r.base.DB(ctx).Model(&models.Vehicle{}).Select("id").Where("department_id = ?", *scope.DepartmentID))
	}
	if scope.UserID != nil {
		query = query.Where("driver_id = ?", *scope.UserID)
	}
	if scope.CompanyID != "" {
		query = query.Where("driver_id IN (?)",
			r.base.DB(ctx).Model(&models.User{}).Select("id").Where("coyno_id = ?", scope.CompanyID))
	}
	var rows []models.Trip
	err := query.Preload("Vehicle").Preload("Driver.Department").Order("start_time ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) Departments(ctx context.Context, scope Scope) ([]models.Department, error) {
	query := r.base.DB(ctx).Model(&models.Department{}).Where("is_active = ?", true)
	if scope.DepartmentID != nil {
		query = query.Where("id = ?", *scope.DepartmentID)
	}
	var rows []models.Department
	err := query.Order("code ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) Users(ctx context.Context, scope Scope) ([]models.User, error) {
	query := r.base.DB(ctx).Model(&models.User{}).Where("is_active = ?", true)
	if scope.DepartmentID != nil {
		query = query.Where("department_id = ?", *scope.DepartmentID)
	}
	if scope.UserID != nil {
		query = query.Where("id = ?", *scope.UserID)
	}
	if scope.CompanyID != "" {
		query = query.Where("coyno_id = ?", scope.CompanyID)
	}
	var rows []models.User
	err := query.Preload("Department").Order("last_name ASC, first_name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) Schedules(ctx context.Context, scope Scope) ([]models.MaintenanceSchedule, error) {
	query := r.base.DB(ctx).Model(&models.MaintenanceSchedule{}).Where("is_active = ?", true)
	if scope.DepartmentID != nil {
		query = query.Where("vehicle_id IN (?)",
			r.base.DB(ctx).Model(&models.Vehicle{}).Select("id").Where("department_id = ?", *scope.DepartmentID))
	}
	var rows []models.MaintenanceSchedule
	err := query.Preload("Vehicle").Order("next_due_date ASC, id ASC").Find(&rows).Error
	return rows, err
}
