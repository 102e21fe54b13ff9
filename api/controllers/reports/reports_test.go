package reports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	"github.com/angelmondragon/fleetdesk-backend/internal/reports"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type stubReports struct {
	name string
	q    analytics.Query
}

func (s *stubReports) Generate(_ context.Context, name string, q analytics.Query) (*reports.File, error) {
	s.name, s.q = name, q
	if name != reports.FleetSummary {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "unknown report %q", name)
	}
	return &reports.File{Filename: "fleet-summary-week-2025-03-10.csv", Content: []byte("Number Plate\nABC123\n")}, nil
}

func serveReport(t *testing.T, svc reports.Service, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/reports/{name}", Download(svc, logger.Nop()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDownloadWritesAttachment(t *testing.T) {
	stub := &stubReports{}
	rec := serveReport(t, stub, "/reports/fleet-summary?filter=week")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if stub.q.Filter != "week" {
		t.Fatalf("filter not forwarded: %+v", stub.q)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="fleet-summary-week-2025-03-10.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "Number Plate\nABC123\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestDownloadUnknownReport(t *testing.T) {
	rec := serveReport(t, &stubReports{}, "/reports/payroll")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
