package analytics

import (
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
)

func TestBuildDateRangeToday(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 4, 5, 0, time.Local)
	got, err := BuildDateRange(now, "today", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)
	if !got.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, got.Start)
	}
	if !got.End.Equal(now) || got.End.Before(got.Start) {
		t.Fatalf("expected end %v, got %v", now, got.End)
	}
}

func TestBuildDateRangeWeekStartsSunday(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 30, 0, 0, time.Local)
	for i := 0; i < 14; i++ {
		now := base.AddDate(0, 0, i)
		got, err := BuildDateRange(now, "week", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Start.Weekday() != time.Sunday {
			t.Fatalf("%s: expected Sunday start, got %s", now.Format(time.DateOnly), got.Start.Weekday())
		}
		if h, m, s := got.Start.Clock(); h != 0 || m != 0 || s != 0 {
			t.Fatalf("expected midnight start, got %v", got.Start)
		}
		if got.Start.After(now) || now.Sub(got.Start) >= 7*24*time.Hour {
			t.Fatalf("start %v not within the week of %v", got.Start, now)
		}
	}
}

func TestBuildDateRangeMonth(t *testing.T) {
	now := time.Date(2025, 2, 27, 8, 0, 0, 0, time.Local)
	got, err := BuildDateRange(now, "month", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local); !got.Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Start)
	}
}

func TestBuildDateRangeAll(t *testing.T) {
	for _, filter := range []string{"", "all", " ALL "} {
		got, err := BuildDateRange(time.Now(), filter, "", "")
		if err != nil || got != nil {
			t.Fatalf("filter %q: expected nil range, got %v (%v)", filter, got, err)
		}
	}
}

func TestBuildDateRangeCustom(t *testing.T) {
	got, err := BuildDateRange(time.Now(), "custom", "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", got.Start)
	}
	if !got.End.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", got.End)
	}
}

func TestBuildDateRangeCustomKeepsInvertedBounds(t *testing.T) {
	got, err := BuildDateRange(time.Now(), "custom", "2024-02-01", "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.After(got.End) {
		t.Fatalf("expected bounds kept as given, got %v..%v", got.Start, got.End)
	}
}

func TestBuildDateRangeCustomRFC3339AndEmpty(t *testing.T) {
	got, err := BuildDateRange(time.Now(), "custom", "2024-01-01T10:00:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Start.Hour() != 10 || !got.Contains(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %+v", got)
	}

	none, err := BuildDateRange(time.Now(), "custom", "", "")
	if err != nil || none != nil {
		t.Fatalf("expected no window, got %v (%v)", none, err)
	}
}

func TestBuildDateRangeRejectsBadInput(t *testing.T) {
	cases := [][3]string{
		{"yesterday", "", ""},
		{"custom", "01/02/2024", ""},
		{"custom", "2024-01-01", "soon"},
	}
	for _, c := range cases {
		_, err := BuildDateRange(time.Now(), c[0], c[1], c[2])
		if err == nil {
			t.Fatalf("expected error for %v", c)
		}
		if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %v, got %s", c, code)
		}
	}
}
