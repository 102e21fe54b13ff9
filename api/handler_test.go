package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/angelmondragon/fleetdesk-backend/pkg/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
)

const testPassword = "correct-horse-1"

type fixture struct {
	t       *testing.T
	cfg     *config.Config
	handler http.Handler
	users   map[string]*models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := dbtest.Open(t)

	cfg := &config.Config{
		App:      config.AppConfig{Env: config.AppEnvTest},
		JWT:      config.JWTConfig{Secret: "test-secret", Issuer: "fleetdesk", ExpiresIn: config.Duration(time.Hour)},
		Password: config.PasswordConfig{BcryptCost: 4},
		CORS:     config.CORSConfig{FrontendURL: "http://localhost:3000"},
	}

	hash, err := security.HashPassword(testPassword, cfg.Password.BcryptCost)
	require.NoError(t, err)

	seed := []*models.User{
		{CoynoID: "ADM-1", Email: "admin@fleet.test", FirstName: "Ada", LastName: "Admin", UserRole: enums.UserRoleAdmin, IsActive: true},
		{CoynoID: "DRV-1", Email: "driver@fleet.test", FirstName: "Dan", LastName: "Driver", UserRole: enums.UserRoleDriver, IsActive: true},
		{CoynoID: "DRV-2", Email: "gone@fleet.test", FirstName: "Gil", LastName: "Gone", UserRole: enums.UserRoleDriver, IsActive: true},
	}
	users := map[string]*models.User{}
	for _, u := range seed {
		u.PasswordHash = &hash
		require.NoError(t, client.DB().Create(u).Error)
		users[u.CoynoID] = u
	}
	require.NoError(t, client.DB().Model(&models.User{}).Where("id = ?", users["DRV-2"].ID).Update("is_active", false).Error)

	handler, err := NewHandler(HandlerParams{
		Config:   cfg,
		Logger:   logger.Nop(),
		DB:       client,
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	return &fixture{t: t, cfg: cfg, handler: handler, users: users}
}

func (f *fixture) token(coynoID string, now time.Time) string {
	f.t.Helper()
	u := f.users[coynoID]
	token, _, err := pkgAuth.MintAccessToken(f.cfg.JWT, now, pkgAuth.AccessTokenPayload{UserID: u.ID, CoynoID: u.CoynoID, Role: u.UserRole})
	require.NoError(f.t, err)
	return token
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Error.Message
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[map[string]any](t, rec)
	require.Equal(t, "ok", data["status"])
	require.Equal(t, "up", data["database"])
}

func TestLoginThenMe(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"coyno_id": "ADM-1", "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decodeData[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, login.Token)

	rec = f.do(http.MethodGet, "/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decodeData[map[string]any](t, rec)
	require.Equal(t, "ADM-1", me["coyno_id"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"coyno_id": "ADM-1", "password": "nope-nope"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", errorMessage(t, rec))
}

func TestAuthGate(t *testing.T) {
	f := newFixture(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/vehicles", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("expired token", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/vehicles", f.token("ADM-1", time.Now().Add(-2*time.Hour)), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("inactive account", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/vehicles", f.token("DRV-2", time.Now()), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "User account is deactivated", errorMessage(t, rec))
	})
	t.Run("driver on analytics", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/analytics/dashboard", f.token("DRV-1", time.Now()), nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDuplicatePlateConflicts(t *testing.T) {
	f := newFixture(t)
	admin := f.token("ADM-1", time.Now())
	vehicle := map[string]any{"number_plate": "ABC123", "make": "Toyota", "model": "Hilux", "year": 2022}

	rec := f.do(http.MethodPost, "/api/v1/vehicles", admin, vehicle)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/v1/vehicles", admin, vehicle)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestEndingCompletedTripIsRejected(t *testing.T) {
	f := newFixture(t)
	admin := f.token("ADM-1", time.Now())
	driver := f.token("DRV-1", time.Now())

	rec := f.do(http.MethodPost, "/api/v1/vehicles", admin, map[string]any{
		"number_plate": "TRP-1", "make": "Ford", "model": "Transit", "year": 2021, "current_odometer": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	vehicleID := decodeData[struct {
		ID uint `json:"id"`
	}](t, rec).ID

	rec = f.do(http.MethodPost, "/api/v1/trips", driver, map[string]any{
		"vehicle_id":     vehicleID,
		"start_location": map[string]any{"latitude": 52.52, "longitude": 13.405},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tripID := decodeData[struct {
		ID uint `json:"id"`
	}](t, rec).ID
	path := "/api/v1/trips/" + itoa(tripID) + "/end"

	rec = f.do(http.MethodPut, path, driver, map[string]any{"end_odometer": 1100})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ended := decodeData[struct {
		Status  string     `json:"status"`
		EndTime *time.Time `json:"end_time"`
	}](t, rec)
	require.Equal(t, "completed", ended.Status)
	require.NotNil(t, ended.EndTime)

	rec = f.do(http.MethodPut, path, driver, map[string]any{"end_odometer": 1200})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Trip is not active", errorMessage(t, rec))

	rec = f.do(http.MethodGet, "/api/v1/trips/"+itoa(tripID), driver, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decodeData[struct {
		EndTime *time.Time `json:"end_time"`
	}](t, rec)
	require.NotNil(t, after.EndTime)
	require.True(t, after.EndTime.Equal(*ended.EndTime))
}

func TestReportDownload(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/reports/fleet-summary?filter=month", f.token("ADM-1", time.Now()), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "fleet-summary-month-")
}

func TestUnknownReportIsNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/reports/payroll", f.token("ADM-1", time.Now()), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHandlerRequiresDatabase(t *testing.T) {
	_, err := NewHandler(HandlerParams{Config: &config.Config{}})
	require.Error(t, err)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
