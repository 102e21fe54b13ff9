package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return entry
}

func TestRequestScopedFieldsReachEveryLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-9")
	ctx = log.WithUserID(ctx, 7)
	ctx = log.WithActorRole(ctx, "manager")

	log.Error(ctx, "trip end failed", errors.New("tx aborted"))
	entry := decodeLine(t, buf)

	if entry[FieldRequestID] != "req-9" || entry[FieldUserID] != float64(7) || entry[FieldActorRole] != "manager" {
		t.Fatalf("missing scoped fields: %v", entry)
	}
	if entry["error"] != "tx aborted" || entry[FieldStack] == nil {
		t.Fatalf("error entry lacks error/stack: %v", entry)
	}
	if entry["service"] != "api" {
		t.Fatalf("service field missing: %v", entry)
	}
}

func TestScopedFieldsDoNotLeakIntoParentContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Output: buf})

	parent := log.WithField(context.Background(), "route", "/api/v1/trips")
	_ = log.WithFields(parent, map[string]any{"trip_id": 12})

	log.Info(parent, "request.complete")
	entry := decodeLine(t, buf)
	if _, ok := entry["trip_id"]; ok {
		t.Fatalf("child field leaked into parent: %v", entry)
	}
	if entry["route"] != "/api/v1/trips" {
		t.Fatalf("parent field missing: %v", entry)
	}
}

func TestWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{ServiceName: "api", Output: buf}).Warn(context.Background(), "slow query")
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatal("stack should be omitted when warn stack is disabled")
	}

	buf.Reset()
	New(Options{ServiceName: "api", Output: buf, WarnStack: true}).Warn(context.Background(), "slow query")
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatal("expected stack when warn stack is enabled")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{ServiceName: "api", Level: zerolog.InfoLevel, Output: buf}).Debug(context.Background(), "request.start")
	if buf.Len() != 0 {
		t.Fatalf("debug entry written at info level: %s", buf.String())
	}
}

func TestNopIsSilent(t *testing.T) {
	log := Nop()
	ctx := log.WithRequestID(context.Background(), "req-1")
	log.Error(ctx, "ignored", errors.New("x"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
		" WARN ": zerolog.WarnLevel,
		"debug":  zerolog.DebugLevel,
		"error":  zerolog.ErrorLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}
