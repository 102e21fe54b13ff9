package departments

import (
	"context"
	"errors"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes department persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a department repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindByCode returns nil without error when no department owns the code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) List(ctx context.Context, includeInactive bool) ([]models.Department, error) {
	query := r.db.WithContext(ctx).Model(&models.Department{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Department
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Save(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// CountMembers returns the active vehicles and users attached to a department.
func (r *Repository) CountMembers(ctx context.Context, id uint) (vehicles int64, users int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&models.Vehicle{}).Where("department_id = ? AND is_active = ?", id, true).Count(&vehicles).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&models.User{}).Where("department_id = ? AND is_active = ?", id, true).Count(&users).Error; err != nil {
		return 0, 0, err
	}
	return vehicles, users, nil
}
