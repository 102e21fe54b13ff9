package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "fleetdesk", ExpiresIn: config.Duration(time.Hour)}

type stubUsers map[uint]*models.User

func (s stubUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func mintTestToken(t *testing.T, now time.Time, userID uint, role enums.UserRole) string {
	t.Helper()
	token, _, err := auth.MintAccessToken(testJWT, now, auth.AccessTokenPayload{UserID: userID, CoynoID: "C-1", Role: role})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func serveAuth(t *testing.T, users UserLoader, header string) (*httptest.ResponseRecorder, Principal) {
	t.Helper()
	var captured Principal
	handler := Auth(testJWT, users, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload.Error.Message
}

func TestAuthRejectsMissingToken(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Bearer    "} {
		rec, _ := serveAuth(t, stubUsers{}, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "Not authorized, no token" {
			t.Fatalf("header %q: unexpected message %q", header, msg)
		}
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	rec, _ := serveAuth(t, stubUsers{}, "Bearer invalid")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Not authorized, token failed" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	users := stubUsers{1: {ID: 1, UserRole: enums.UserRoleAdmin, IsActive: true}}
	token := mintTestToken(t, time.Now().Add(-2*time.Hour), 1, enums.UserRoleAdmin)

	rec, _ := serveAuth(t, users, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Token expired" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthRejectsUnknownAndDeactivatedUsers(t *testing.T) {
	users := stubUsers{2: {ID: 2, UserRole: enums.UserRoleDriver, IsActive: false}}

	rec, _ := serveAuth(t, users, "Bearer "+mintTestToken(t, time.Now(), 9, enums.UserRoleDriver))
	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "User not found" {
		t.Fatalf("unknown user: got %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = serveAuth(t, users, "Bearer "+mintTestToken(t, time.Now(), 2, enums.UserRoleDriver))
	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "User account is deactivated" {
		t.Fatalf("inactive user: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthAttachesPrincipalWithStoredRole(t *testing.T) {
	users := stubUsers{3: {ID: 3, CoynoID: "C-3", UserRole: enums.UserRoleManager, IsActive: true}}
	token := mintTestToken(t, time.Now(), 3, enums.UserRoleAdmin)

	rec, p := serveAuth(t, users, "bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if p.UserID != 3 || p.CoynoID != "C-3" || p.Role != enums.UserRoleManager || p.TokenID == "" {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestRequireRoles(t *testing.T) {
	handler := RequireRoles(enums.RolesManagement, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		ctx    context.Context
		status int
	}{
		{"anonymous", context.Background(), http.StatusUnauthorized},
		{"driver", WithPrincipal(context.Background(), Principal{UserID: 1, Role: enums.UserRoleDriver}), http.StatusForbidden},
		{"manager", WithPrincipal(context.Background(), Principal{UserID: 1, Role: enums.UserRoleManager}), http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(tc.ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.status, rec.Code)
		}
		if tc.name == "driver" {
			if msg := errorMessage(t, rec); msg != "User role driver is not authorized to access this route" {
				t.Fatalf("unexpected message %q", msg)
			}
		}
	}
}
