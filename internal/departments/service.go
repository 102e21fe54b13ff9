package departments

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
)

const maxCodeLength = 10

type departmentsRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	FindByID(ctx context.Context, id uint) (*models.Department, error)
	FindByCode(ctx context.Context, code string) (*models.Department, error)
	List(ctx context.Context, includeInactive bool) ([]models.Department, error)
	Save(ctx context.Context, dept *models.Department) error
	CountMembers(ctx context.Context, id uint) (int64, int64, error)
}

// Service exposes department CRUD. Deletion flips is_active.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]DepartmentDTO, error)
	Get(ctx context.Context, id uint) (*DepartmentDTO, error)
	Create(ctx context.Context, input CreateInput) (*DepartmentDTO, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*DepartmentDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo departmentsRepository
}

func NewService(repo departmentsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("departments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]DepartmentDTO, error) {
	rows, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list departments")
	}
	out := make([]DepartmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*DepartmentDTO, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicles, users, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count department members")
	}
	dto := FromModel(dept)
	dto.VehicleCount = &vehicles
	dto.UserCount = &users
	return dto, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*DepartmentDTO, error) {
	code, err := normalizeCode(input.Code)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "department name is required")
	}
	if err := s.ensureCodeFree(ctx, code, 0); err != nil {
		return nil, err
	}

	dept := &models.Department{
		Code:        code,
		Name:        name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return FromModel(dept), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*DepartmentDTO, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		code, err := normalizeCode(*input.Code)
		if err != nil {
			return nil, err
		}
		if code != dept.Code {
			if err := s.ensureCodeFree(ctx, code, dept.ID); err != nil {
				return nil, err
			}
			dept.Code = code
		}
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "department name is required")
		}
		dept.Name = name
	}
	if input.Description != nil {
		dept.Description = input.Description
	}
	if input.IsActive != nil {
		dept.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, dept); err != nil {
		return nil, err
	}
	return FromModel(dept), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	dept, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !dept.IsActive {
		return nil
	}
	dept.IsActive = false
	return s.repo.Save(ctx, dept)
}

func (s *service) load(ctx context.Context, id uint) (*models.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Classify(err).WithDetails(map[string]any{"department_id": id})
	}
	return dept, nil
}

func (s *service) ensureCodeFree(ctx context.Context, code string, selfID uint) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup department code")
	}
	if existing != nil && existing.ID != selfID {
		return pkgerrors.New(pkgerrors.CodeConflict, "Department code already exists").
			WithDetails(map[string]any{"code": code})
	}
	return nil
}

func normalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "department code is required")
	}
	if len(code) > maxCodeLength {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "department code must be at most %d characters", maxCodeLength)
	}
	return code, nil
}
