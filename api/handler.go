// Package api assembles repositories, services and the router into the
// handler cmd/api serves.
package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/fleetdesk-backend/api/middleware"
	"github.com/angelmondragon/fleetdesk-backend/api/routes"
	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	"github.com/angelmondragon/fleetdesk-backend/internal/auth"
	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/internal/maintenance"
	"github.com/angelmondragon/fleetdesk-backend/internal/reports"
	"github.com/angelmondragon/fleetdesk-backend/internal/trips"
	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	"github.com/angelmondragon/fleetdesk-backend/internal/vehicles"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
	"github.com/angelmondragon/fleetdesk-backend/pkg/metrics"
)

// HandlerParams carries the process-level resources. RateStore and Registry
// may be nil.
type HandlerParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        *db.Client
	RateStore middleware.RateLimiterStore
	Registry  *prometheus.Registry
}

// NewHandler returns the HTTP handler that cmd/api wires into its server.
func NewHandler(p HandlerParams) (http.Handler, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if p.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	gdb := p.DB.DB()

	usersRepo := users.NewRepository(gdb)
	departmentsRepo := departments.NewRepository(gdb)

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:    usersRepo,
		SessionRepo: auth.NewSessionRepository(gdb),
		JWTConfig:   p.Config.JWT,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             p.DB,
		PasswordConfig: p.Config.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("register service: %w", err)
	}
	usersSvc, err := users.NewService(usersRepo, departmentsRepo)
	if err != nil {
		return nil, fmt.Errorf("users service: %w", err)
	}
	departmentsSvc, err := departments.NewService(departmentsRepo)
	if err != nil {
		return nil, fmt.Errorf("departments service: %w", err)
	}
	vehiclesSvc, err := vehicles.NewService(vehicles.NewRepository(gdb), p.DB)
	if err != nil {
		return nil, fmt.Errorf("vehicles service: %w", err)
	}
	tripsSvc, err := trips.NewService(trips.NewRepository(gdb), p.DB)
	if err != nil {
		return nil, fmt.Errorf("trips service: %w", err)
	}
	maintenanceSvc, err := maintenance.NewService(maintenance.NewRepository(gdb))
	if err != nil {
		return nil, fmt.Errorf("maintenance service: %w", err)
	}
	analyticsSvc, err := analytics.NewService(analytics.NewRepository(gdb))
	if err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	reportsSvc, err := reports.NewService(analyticsSvc)
	if err != nil {
		return nil, fmt.Errorf("reports service: %w", err)
	}

	deps := routes.Dependencies{
		DB:          p.DB,
		UserLoader:  usersRepo,
		RateStore:   p.RateStore,
		Auth:        authSvc,
		Register:    registerSvc,
		Users:       usersSvc,
		Departments: departmentsSvc,
		Vehicles:    vehiclesSvc,
		Trips:       tripsSvc,
		Maintenance: maintenanceSvc,
		Analytics:   analyticsSvc,
		Reports:     reportsSvc,
	}
	if p.Registry != nil {
		deps.Metrics = metrics.NewHTTPMetrics(p.Registry)
		deps.Gatherer = p.Registry
	}

	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return routes.NewRouter(p.Config, logg, deps), nil
}
