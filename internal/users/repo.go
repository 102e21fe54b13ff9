package users

import (
	"context"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/repo"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.base.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user with their department.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).Preload("Department").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCoynoID retrieves the user owning the login identifier.
func (r *Repository) FindByCoynoID(ctx context.Context, coynoID string) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).Preload("Department").Where("coyno_id = ?", coynoID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByCoynoIDOrEmail reports whether either identifier is already taken.
func (r *Repository) ExistsByCoynoIDOrEmail(ctx context.Context, coynoID, email string) (bool, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.User{}).
		Where("coyno_id = ? OR email = ?", coynoID, email).
		Count(&count).Error
	return count > 0, err
}

// List returns one page of users matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.User, pagination.Meta, error) {
	query := r.base.DB(ctx).Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("user_role = ?", filter.Role)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = repo.Search(query, filter.Search, "first_name", "last_name", "email", "coyno_id")

	var rows []models.User
	meta, err := repo.Page(query, page, "created_at DESC, id DESC", &rows, "Department")
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rows, meta, nil
}

// ListByRole returns every active user holding role, sorted by name.
func (r *Repository) ListByRole(ctx context.Context, role enums.UserRole) ([]models.User, error) {
	var rows []models.User
	err := r.base.DB(ctx).
		Preload("Department").
		Where("user_role = ? AND is_active = ?", role, true).
		Order("first_name ASC, last_name ASC").
		Find(&rows).Error
	return rows, err
}

// Save persists scalar columns without touching loaded associations.
func (r *Repository) Save(ctx context.Context, user *models.User) error {
	return r.base.DB(ctx).Omit(clause.Associations).Save(user).Error
}

// SetActive flips the soft-delete flag.
func (r *Repository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.base.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.base.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

