package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
)

type usersRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.User, pagination.Meta, error)
	ListByRole(ctx context.Context, role enums.UserRole) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
}

type departmentLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Department, error)
}

// Service manages back office accounts after registration.
type Service interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UserDTO, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*UserDTO, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*UserDTO, error)
	ToggleActive(ctx context.Context, actorID, id uint) (*UserDTO, error)
	ListDrivers(ctx context.Context) ([]UserRef, error)
}

type service struct {
	repo        usersRepository
	departments departmentLookup
}

func NewService(repo usersRepository, departments departmentLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if departments == nil {
		return nil, fmt.Errorf("departments repository required")
	}
	return &service{repo: repo, departments: departments}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UserDTO, pagination.Meta, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid role %q", filter.Role)
	}
	rows, meta, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, meta, nil
}

func (s *service) Get(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
		}
		if email != user.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != user.ID:
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "Email already in use")
			case err != nil && !db.IsNotFound(err):
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
			}
			user.Email = email
		}
	}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name is required")
		}
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name is required")
		}
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			user.Phone = nil
		} else {
			user.Phone = &phone
		}
	}
	if input.UserRole != nil {
		role, err := enums.ParseUserRole(*input.UserRole)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user role")
		}
		user.UserRole = role
	}
	if input.DepartmentID != nil {
		if err := s.assignDepartment(ctx, user, *input.DepartmentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.Get(ctx, user.ID)
}

// ToggleActive flips is_active. Accounts are never hard-deleted.
func (s *service) ToggleActive(ctx context.Context, actorID, id uint) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsActive && actorID == user.ID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "You cannot deactivate your own account")
	}
	if err := s.repo.SetActive(ctx, user.ID, !user.IsActive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle user")
	}
	user.IsActive = !user.IsActive
	return FromModel(user), nil
}

func (s *service) ListDrivers(ctx context.Context) ([]UserRef, error) {
	rows, err := s.repo.ListByRole(ctx, enums.UserRoleDriver)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list drivers")
	}
	out := make([]UserRef, 0, len(rows))
	for i := range rows {
		out = append(out, *RefFromModel(&rows[i]))
	}
	return out, nil
}

// assignDepartment treats id 0 as "clear the department".
func (s *service) assignDepartment(ctx context.Context, user *models.User, id uint) error {
	if id == 0 {
		user.DepartmentID = nil
		user.Department = nil
		return nil
	}
	dept, err := s.departments.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "department does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load department")
	}
	if !dept.IsActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "department is inactive")
	}
	user.DepartmentID = &dept.ID
	user.Department = dept
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
