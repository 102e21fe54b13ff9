package auth

import (
	"context"
	"strings"

	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	duplicateUserMessage = "User with this COYNO ID or email already exists"
	tempPasswordLength   = 12
)

// RegisterService creates accounts on behalf of an authenticated admin or manager.
type RegisterService interface {
	Register(ctx context.Context, actor Actor, req RegisterRequest) (*users.UserDTO, error)
	AddAdmin(ctx context.Context, req AddAdminRequest) (*AddAdminResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, actor Actor, req RegisterRequest) (*users.UserDTO, error) {
	role := enums.UserRoleDriver
	if req.UserRole != nil && strings.TrimSpace(*req.UserRole) != "" {
		parsed, err := enums.ParseUserRole(strings.TrimSpace(*req.UserRole))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user role")
		}
		role = parsed
	}
	if role == enums.UserRoleAdmin && actor.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.Newf(pkgerrors.CodeForbidden, "User role %s is not authorized to create admins", actor.Role)
	}

	dto, err := s.buildUser(req.CoynoID, req.Email, req.FirstName, req.LastName, req.Phone, req.DepartmentID, role)
	if err != nil {
		return nil, err
	}
	if req.Password != nil {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		dto.PasswordHash = &hash
	}
	return s.create(ctx, dto)
}

func (s *registerService) AddAdmin(ctx context.Context, req AddAdminRequest) (*AddAdminResponse, error) {
	dto, err := s.buildUser(req.CoynoID, req.Email, req.FirstName, req.LastName, req.Phone, req.DepartmentID, enums.UserRoleAdmin)
	if err != nil {
		return nil, err
	}

	var generated string
	password := ""
	if req.Password != nil {
		password = *req.Password
	}
	if password == "" {
		generated, err = security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
		}
		password = generated
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	dto.PasswordHash = &hash

	user, err := s.create(ctx, dto)
	if err != nil {
		return nil, err
	}
	return &AddAdminResponse{User: user, TemporaryPassword: generated}, nil
}

func (s *registerService) buildUser(coynoID, email, first, last string, phone *string, departmentID *uint, role enums.UserRole) (users.CreateUserDTO, error) {
	dto := users.CreateUserDTO{
		CoynoID:   strings.TrimSpace(coynoID),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FirstName: strings.TrimSpace(first),
		LastName:  strings.TrimSpace(last),
		Phone:     phone,
		UserRole:  role,
	}
	switch {
	case dto.CoynoID == "":
		return dto, pkgerrors.New(pkgerrors.CodeValidation, "coyno_id is required")
	case dto.Email == "":
		return dto, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	case dto.FirstName == "" || dto.LastName == "":
		return dto, pkgerrors.New(pkgerrors.CodeValidation, "first_name and last_name are required")
	}
	if departmentID != nil && *departmentID != 0 {
		dto.DepartmentID = departmentID
	}
	return dto, nil
}

func (s *registerService) hash(password string) (string, error) {
	if len(password) < security.MinPasswordLength {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "password must be at least %d characters", security.MinPasswordLength)
	}
	hash, err := security.HashPassword(password, s.passwordCfg.BcryptCost)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	return hash, nil
}

func (s *registerService) create(ctx context.Context, dto users.CreateUserDTO) (*users.UserDTO, error) {
	var created *users.UserDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		taken, err := userRepo.ExistsByCoynoIDOrEmail(ctx, dto.CoynoID, dto.Email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user identity")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateUserMessage)
		}

		if dto.DepartmentID != nil {
			dept, err := departments.NewRepository(tx).FindByID(ctx, *dto.DepartmentID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.New(pkgerrors.CodeValidation, "department does not exist")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load department")
			}
			if !dept.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation, "department is inactive")
			}
		}

		user, err := userRepo.Create(ctx, dto)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateUserMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		loaded, err := userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
		}
		created = users.FromModel(loaded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
