package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type stubService struct {
	analytics.Service
	last  analytics.Query
	calls int
	err   error
}

func (s *stubService) Dashboard(_ context.Context, q analytics.Query) (*analytics.DashboardMetrics, error) {
	s.calls++
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.DashboardMetrics{TotalVehicles: 4, ActiveVehicles: 3, UtilizationRate: 75}, nil
}

func TestDashboardPassesWindowAndScope(t *testing.T) {
	stub := &stubService{}
	handler := Dashboard(stub, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?filter=custom&start_date=2024-01-01&end_date=2024-01-31&company_id=ACME&department_id=3&user_id=9", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	q := stub.last
	if q.Filter != "custom" || q.StartDate != "2024-01-01" || q.EndDate != "2024-01-31" {
		t.Fatalf("unexpected window %+v", q)
	}
	if q.Scope.CompanyID != "ACME" || q.Scope.DepartmentID == nil || *q.Scope.DepartmentID != 3 || q.Scope.UserID == nil || *q.Scope.UserID != 9 {
		t.Fatalf("unexpected scope %+v", q.Scope)
	}

	var envelope struct {
		Data analytics.DashboardMetrics `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.UtilizationRate != 75 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestDashboardRejectsBadScope(t *testing.T) {
	stub := &stubService{}
	handler := Dashboard(stub, logger.Nop())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?department_id=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatal("service should not be invoked on bad params")
	}
}

func TestDashboardSurfacesServiceErrors(t *testing.T) {
	stub := &stubService{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid date filter")}
	rec := httptest.NewRecorder()
	Dashboard(stub, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?filter=year", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
