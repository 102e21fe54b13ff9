package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
)

type sampleBody struct {
	Plate string `json:"number_plate" validate:"required"`
	Year  int    `json:"year" validate:"gte=1900"`
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"year":1800,"extra":true}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["number_plate"] != "is required" || details["year"] != "must be greater than or equal to 1900" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var body sampleBody
	if err := DecodeJSONBody(req, &body); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"Bearer":         "",
		"Bearer   ":      "",
		"Basic abc":      "",
		"Bearer abc":     "abc",
		"bearer  abc.d ": "abc.d",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		if got := BearerToken(req); got != want {
			t.Fatalf("BearerToken(%q) = %q want %q", header, got, want)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=5&department_id=4&is_active=false&from=2025-01-02", nil)

	page, err := ParsePage(req)
	if err != nil || page.Page != 2 || page.Limit != 5 {
		t.Fatalf("unexpected page %+v err %v", page, err)
	}
	dept, err := ParseQueryUint(req, "department_id")
	if err != nil || dept == nil || *dept != 4 {
		t.Fatalf("unexpected department %v err %v", dept, err)
	}
	active, err := ParseQueryBool(req, "is_active")
	if err != nil || active == nil || *active {
		t.Fatalf("unexpected is_active %v err %v", active, err)
	}
	from, err := ParseQueryTime(req, "from")
	if err != nil || from == nil || from.Day() != 2 {
		t.Fatalf("unexpected from %v err %v", from, err)
	}
	if missing, err := ParseQueryUint(req, "vehicle_id"); err != nil || missing != nil {
		t.Fatalf("expected nil for missing param, got %v %v", missing, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/?limit=500&vehicle_id=x", nil)
	if _, err := ParsePage(bad); err == nil {
		t.Fatal("expected limit above max to fail")
	}
	if _, err := ParseQueryUint(bad, "vehicle_id"); err == nil {
		t.Fatal("expected non-numeric id to fail")
	}
}

func TestPathUint(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := PathUint(req, "id")
	if err != nil || id != 42 {
		t.Fatalf("unexpected id %d err %v", id, err)
	}

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "abc")
	if _, err := PathUint(req, "id"); err == nil {
		t.Fatal("expected invalid id to fail")
	}
}
