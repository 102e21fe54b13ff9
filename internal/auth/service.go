package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	pkgAuth "github.com/angelmondragon/fleetdesk-backend/pkg/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "Invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, client ClientInfo) (*LoginResponse, error)
	Logout(ctx context.Context, userID uint, tokenID string) error
	Me(ctx context.Context, userID uint) (*users.UserDTO, error)
}

type service struct {
	users    userRepository
	sessions sessionRepository
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

type userRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByCoynoID(ctx context.Context, coynoID string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type sessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	Deactivate(ctx context.Context, userID uint, tokenID string) (bool, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo    userRepository
	SessionRepo sessionRepository
	JWTConfig   config.JWTConfig
	Now         func() time.Time
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionRepo == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:    params.UserRepo,
		sessions: params.SessionRepo,
		jwtCfg:   params.JWTConfig,
		now:      now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, client ClientInfo) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.CoynoID, req.Password)
	if err != nil {
		return nil, err
	}

	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	token, claims, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:  user.ID,
		CoynoID: user.CoynoID,
		Role:    user.UserRole,
		JTI:     uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	session := &models.UserSession{
		UserID:    user.ID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		IsActive:  true,
		IPAddress: optional(client.IPAddress),
		UserAgent: optional(client.UserAgent),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record session")
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      users.FromModel(user),
	}, nil
}

// Logout is advisory: the JWT itself stays valid until it expires.
func (s *service) Logout(ctx context.Context, userID uint, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return nil
	}
	if _, err := s.sessions.Deactivate(ctx, userID, tokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uint) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) authenticate(ctx context.Context, coynoID, password string) (*models.User, error) {
	input := strings.TrimSpace(coynoID)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByCoynoID(ctx, input)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive || user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	valid, err := security.VerifyPassword(password, *user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
