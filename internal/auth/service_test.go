package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/fleetdesk-backend/pkg/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byCoyno   map[string]*models.User
	lastLogin map[uint]time.Time
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{byCoyno: map[string]*models.User{}, lastLogin: map[uint]time.Time{}}
	for _, u := range users {
		repo.byCoyno[u.CoynoID] = u
	}
	return repo
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range s.byCoyno {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByCoynoID(ctx context.Context, coynoID string) (*models.User, error) {
	if u, ok := s.byCoyno[coynoID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

type stubSessionRepo struct {
	created     []*models.UserSession
	deactivated []string
}

func (s *stubSessionRepo) Create(ctx context.Context, session *models.UserSession) error {
	session.ID = uint(len(s.created) + 1)
	s.created = append(s.created, session)
	return nil
}

func (s *stubSessionRepo) Deactivate(ctx context.Context, userID uint, tokenID string) (bool, error) {
	s.deactivated = append(s.deactivated, tokenID)
	return true, nil
}

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "fleetdesk", ExpiresIn: config.Duration(time.Hour)}

func mustHashPassword(t *testing.T, password string) *string {
	t.Helper()
	hash, err := security.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &hash
}

func buildTestService(t *testing.T, now time.Time, users ...*models.User) (Service, *stubUserRepo, *stubSessionRepo) {
	t.Helper()
	userRepo := newStubUserRepo(users...)
	sessions := &stubSessionRepo{}
	svc, err := NewService(ServiceParams{
		UserRepo:    userRepo,
		SessionRepo: sessions,
		JWTConfig:   testJWT,
		Now:         func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, userRepo, sessions
}

func TestServiceLoginIssuesTokenAndSession(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:           7,
		CoynoID:      "CY-007",
		Email:        "bond@example.com",
		PasswordHash: mustHashPassword(t, "correct-horse"),
		UserRole:     enums.UserRoleManager,
		IsActive:     true,
	}
	svc, userRepo, sessions := buildTestService(t, now, user)

	resp, err := svc.Login(context.Background(), LoginRequest{CoynoID: " CY-007 ", Password: "correct-horse"}, ClientInfo{IPAddress: "10.0.0.1", UserAgent: "curl"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 7 || claims.Role != enums.UserRoleManager {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if resp.User == nil || resp.User.CoynoID != "CY-007" {
		t.Fatalf("expected user in response, got %+v", resp.User)
	}
	if got := userRepo.lastLogin[7]; !got.Equal(now) {
		t.Fatalf("expected last login %v, got %v", now, got)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.created))
	}
	session := sessions.created[0]
	if session.TokenID != claims.ID || !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("session does not match token: %+v", session)
	}
	if session.IPAddress == nil || *session.IPAddress != "10.0.0.1" {
		t.Fatalf("expected ip recorded, got %v", session.IPAddress)
	}
}

func TestServiceLoginRejections(t *testing.T) {
	active := &models.User{ID: 1, CoynoID: "CY-1", PasswordHash: mustHashPassword(t, "password1"), UserRole: enums.UserRoleDriver, IsActive: true}
	inactive := &models.User{ID: 2, CoynoID: "CY-2", PasswordHash: mustHashPassword(t, "password2"), UserRole: enums.UserRoleDriver}
	noPassword := &models.User{ID: 3, CoynoID: "CY-3", UserRole: enums.UserRoleDriver, IsActive: true}
	svc, _, sessions := buildTestService(t, time.Now(), active, inactive, noPassword)

	cases := map[string]LoginRequest{
		"wrong password": {CoynoID: "CY-1", Password: "nope-nope"},
		"unknown user":   {CoynoID: "CY-404", Password: "password1"},
		"inactive user":  {CoynoID: "CY-2", Password: "password2"},
		"no hash":        {CoynoID: "CY-3", Password: "anything"},
		"blank":          {},
	}
	for name, req := range cases {
		_, err := svc.Login(context.Background(), req, ClientInfo{})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("%s: expected unauthorized, got %v", name, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("%s: unexpected message %q", name, typed.Message())
		}
	}
	if len(sessions.created) != 0 {
		t.Fatalf("no session should be recorded on failure")
	}
}

func TestServiceLogoutAndMe(t *testing.T) {
	user := &models.User{ID: 4, CoynoID: "CY-4", UserRole: enums.UserRoleAdmin, IsActive: true}
	svc, _, sessions := buildTestService(t, time.Now(), user)

	if err := svc.Logout(context.Background(), 4, "jti-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.deactivated) != 1 || sessions.deactivated[0] != "jti-1" {
		t.Fatalf("expected jti-1 deactivated, got %v", sessions.deactivated)
	}

	me, err := svc.Me(context.Background(), 4)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.UserRole != enums.UserRoleAdmin {
		t.Fatalf("unexpected role %s", me.UserRole)
	}

	_, err = svc.Me(context.Background(), 99)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
