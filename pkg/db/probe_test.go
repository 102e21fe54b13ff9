package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func newPingMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, mock
}

func TestProbe_ReportsReachable(t *testing.T) {
	conn, mock := newPingMock(t)
	mock.ExpectPing()

	if !Probe(context.Background(), sqlPinger{conn}, time.Second, nil) {
		t.Fatal("expected probe to succeed")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProbe_SwallowsFailure(t *testing.T) {
	conn, mock := newPingMock(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	if Probe(context.Background(), sqlPinger{conn}, time.Second, nil) {
		t.Fatal("expected probe to report unreachable")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProbe_NilPinger(t *testing.T) {
	if Probe(context.Background(), nil, 0, nil) {
		t.Fatal("nil pinger cannot be reachable")
	}
}

func TestIsUniqueViolation_PgError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "vehicles_number_plate_key"}
	if !IsUniqueViolation(err, "vehicles_number_plate_key") {
		t.Fatal("expected constraint match")
	}
	if IsUniqueViolation(err, "vehicles_vin_key") {
		t.Fatal("different constraint must not match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
}
