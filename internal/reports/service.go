package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
)

// Report names, as they appear in the URL and the download filename.
const (
	FleetSummary        = "fleet-summary"
	FuelConsumption     = "fuel-consumption"
	MaintenanceSchedule = "maintenance-schedule"
	DriverPerformance   = "driver-performance"
	CostAnalysis        = "cost-analysis"
	Utilization         = "utilization"
)

var builders = map[string]builder{
	FleetSummary:        fleetSummary,
	FuelConsumption:     fuelConsumption,
	MaintenanceSchedule: maintenanceSchedule,
	DriverPerformance:   driverPerformance,
	CostAnalysis:        costAnalysis,
	Utilization:         utilization,
}

// Names lists every report in a stable order.
func Names() []string {
	return []string{FleetSummary, FuelConsumption, MaintenanceSchedule, DriverPerformance, CostAnalysis, Utilization}
}

// File is a rendered CSV attachment.
type File struct {
	Filename string
	Content  []byte
}

type snapshotLoader interface {
	Load(ctx context.Context, q analytics.Query) (*analytics.Snapshot, error)
}

type Service interface {
	Generate(ctx context.Context, name string, q analytics.Query) (*File, error)
}

type service struct {
	analytics snapshotLoader
}

func NewService(loader snapshotLoader) (Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("analytics loader required")
	}
	return &service{analytics: loader}, nil
}

func (s *service) Generate(ctx context.Context, name string, q analytics.Query) (*File, error) {
	build, ok := builders[name]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "unknown report %q", name)
	}
	snap, err := s.analytics.Load(ctx, q)
	if err != nil {
		return nil, err
	}
	table := build(snap)
	content, err := RenderCSV(table.Headers, table.Rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report")
	}
	return &File{Filename: Filename(name, q.Filter, snap), Content: content}, nil
}

// Filename builds "<report>-<filter>-<YYYY-MM-DD>.csv" dated at generation time.
func Filename(name, filter string, snap *analytics.Snapshot) string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = enums.DateFilterAll.String()
	}
	return fmt.Sprintf("%s-%s-%s.csv", name, filter, snap.Now.Format("2006-01-02"))
}
