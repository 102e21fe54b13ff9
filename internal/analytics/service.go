package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type loader interface {
	Vehicles(ctx context.Context, scope Scope) ([]models.Vehicle, error)
	Trips(ctx context.Context, scope Scope, window *DateRange) ([]models.Trip, error)
	Departments(ctx context.Context, scope Scope) ([]models.Department, error)
	Users(ctx context.Context, scope Scope) ([]models.User, error)
	Schedules(ctx context.Context, scope Scope) ([]models.MaintenanceSchedule, error)
}

// Query carries the raw window parameters and scope of an analytics request.
type Query struct {
	Filter    string
	StartDate string
	EndDate   string
	Scope     Scope
}

// Snapshot is a loaded dataset with the window it was resolved against.
type Snapshot struct {
	Dataset
	Window *DateRange
	Now    time.Time
}

type collection uint8

const (
	withVehicles collection = 1 << iota
	withTrips
	withDepartments
	withUsers
	withSchedules

	withEverything = withVehicles | withTrips | withDepartments | withUsers | withSchedules
)

// Service computes fleet analytics. Every call reloads from the database.
type Service interface {
	Dashboard(ctx context.Context, q Query) (*DashboardMetrics, error)
	Vehicles(ctx context.Context, q Query) (*VehicleMetrics, error)
	Trips(ctx context.Context, q Query) (*TripMetrics, error)
	Fuel(ctx context.Context, q Query) (*FuelMetrics, error)
	Maintenance(ctx context.Context, q Query) (*MaintenanceMetrics, error)
	Departments(ctx context.Context, q Query) ([]DepartmentMetrics, error)
	Utilization(ctx context.Context, q Query) (*UtilizationMetrics, error)
	Drivers(ctx context.Context, q Query) ([]DriverMetrics, error)
	// Load returns the full snapshot for callers that build their own views.
	Load(ctx context.Context, q Query) (*Snapshot, error)
}

type service struct {
	repo loader
	now  func() time.Time
}

func NewService(repo loader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Dashboard(ctx context.Context, q Query) (*DashboardMetrics, error) {
	snap, err := s.snapshot(ctx, q, withEverything)
	if err != nil {
		return nil, err
	}
	out := Dashboard(snap.Dataset, snap.Now, snap.Window)
	return &out, nil
}

func (s *service) Vehicles(ctx context.Context, q Query) (*VehicleMetrics, error) {
	snap, err := s.snapshot(ctx, q, withVehicles|withTrips)
	if err != nil {
		return nil, err
	}
	out := Vehicles(snap.Dataset, snap.Now)
	return &out, nil
}

func (s *service) Trips(ctx context.Context, q Query) (*TripMetrics, error) {
	snap, err := s.snapshot(ctx, q, withTrips)
	if err != nil {
		return nil, err
	}
	out := Trips(snap.Dataset)
	return &out, nil
}

func (s *service) Fuel(ctx context.Context, q Query) (*FuelMetrics, error) {
	snap, err := s.snapshot(ctx, q, withTrips)
	if err != nil {
		return nil, err
	}
	out := Fuel(snap.Dataset)
	return &out, nil
}

func (s *service) Maintenance(ctx context.Context, q Query) (*MaintenanceMetrics, error) {
	snap, err := s.snapshot(ctx, q, withSchedules)
	if err != nil {
		return nil, err
	}
	out := Maintenance(snap.Dataset, snap.Now, snap.Window)
	return &out, nil
}

func (s *service) Departments(ctx context.Context, q Query) ([]DepartmentMetrics, error) {
	snap, err := s.snapshot(ctx, q, withDepartments|withVehicles|withUsers|withTrips)
	if err != nil {
		return nil, err
	}
	return DepartmentBreakdown(snap.Dataset), nil
}

func (s *service) Utilization(ctx context.Context, q Query) (*UtilizationMetrics, error) {
	snap, err := s.snapshot(ctx, q, withVehicles|withTrips)
	if err != nil {
		return nil, err
	}
	out := Utilization(snap.Dataset)
	return &out, nil
}

func (s *service) Drivers(ctx context.Context, q Query) ([]DriverMetrics, error) {
	snap, err := s.snapshot(ctx, q, withUsers|withTrips)
	if err != nil {
		return nil, err
	}
	return DriverBreakdown(snap.Dataset), nil
}

func (s *service) Load(ctx context.Context, q Query) (*Snapshot, error) {
	return s.snapshot(ctx, q, withEverything)
}

func (s *service) snapshot(ctx context.Context, q Query, need collection) (*Snapshot, error) {
	now := s.now()
	window, err := BuildDateRange(now, q.Filter, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Window: window, Now: now}

	g, gctx := errgroup.WithContext(ctx)
	if need&withVehicles != 0 {
		g.Go(func() (err error) {
			snap.Vehicles, err = s.repo.Vehicles(gctx, q.Scope)
			return wrapLoad(err, "vehicles")
		})
	}
	if need&withTrips != 0 {
		g.Go(func() (err error) {
			snap.Trips, err = s.repo.Trips(gctx, q.Scope, window)
			return wrapLoad(err, "trips")
		})
	}
	if need&withDepartments != 0 {
		g.Go(func() (err error) {
			snap.Departments, err = s.repo.Departments(gctx, q.Scope)
			return wrapLoad(err, "departments")
		})
	}
	if need&withUsers != 0 {
		g.Go(func() (err error) {
			snap.Users, err = s.repo.Users(gctx, q.Scope)
			return wrapLoad(err, "users")
		})
	}
	if need&withSchedules != 0 {
		g.Go(func() (err error) {
			snap.Schedules, err = s.repo.Schedules(gctx, q.Scope)
			return wrapLoad(err, "maintenance schedules")
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func wrapLoad(err error, what string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load "+what)
}
