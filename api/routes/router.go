package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/fleetdesk-backend/api/controllers"
	analyticscontrollers "github.com/angelmondragon/fleetdesk-backend/api/controllers/analytics"
	"github.com/angelmondragon/fleetdesk-backend/api/controllers/docs"
	reportcontrollers "github.com/angelmondragon/fleetdesk-backend/api/controllers/reports"
	"github.com/angelmondragon/fleetdesk-backend/api/middleware"
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
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
	"github.com/angelmondragon/fleetdesk-backend/pkg/metrics"
)

const openAPIPath = "/api-docs/openapi.json"

// Dependencies groups what the router hands to controllers and middleware.
// RateStore and Gatherer are optional; nil disables rate limiting and /metrics.
type Dependencies struct {
	DB          db.Pinger
	UserLoader  middleware.UserLoader
	RateStore   middleware.RateLimiterStore
	Metrics     *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Auth        auth.Service
	Register    auth.RegisterService
	Users       users.Service
	Departments departments.Service
	Vehicles    vehicles.Service
	Trips       trips.Service
	Maintenance maintenance.Service
	Analytics   analytics.Service
	Reports     reports.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Debug(cfg.App.IsDev()),
		middleware.CORS(cfg.CORS.AllowedOrigins()),
		middleware.Metrics(deps.Metrics),
	)

	apiPolicy := middleware.NewRateLimitPolicy("api", cfg.RateLimit.Window, cfg.RateLimit.Max, 0)
	loginPolicy := middleware.NewRateLimitPolicy("login", cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginMax, cfg.RateLimit.LoginMax)

	protect := middleware.Auth(cfg.JWT, deps.UserLoader, logg)
	authorize := func(roles enums.RoleSet) func(http.Handler) http.Handler {
		return middleware.RequireRoles(roles, logg)
	}

	r.Get("/health", controllers.Health(cfg, deps.DB))
	r.Get("/api-docs", docs.UI(openAPIPath))
	r.Get(openAPIPath, docs.OpenAPI())
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(apiPolicy, deps.RateStore, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(loginPolicy, deps.RateStore, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(protect)
				r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
				r.Get("/me", controllers.AuthMe(deps.Auth, logg))
				r.With(authorize(enums.RolesManagement)).Post("/register", controllers.AuthRegister(deps.Register, logg))
				r.With(authorize(enums.RolesAdmin)).Post("/add-admin", controllers.AuthAddAdmin(deps.Register, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(protect)

			r.Route("/users", func(r chi.Router) {
				r.Use(authorize(enums.RolesManagement))
				r.Get("/", controllers.UsersList(deps.Users, logg))
				r.Get("/drivers", controllers.UsersDrivers(deps.Users, logg))
				r.Get("/{id}", controllers.UsersGet(deps.Users, logg))
				r.Put("/{id}", controllers.UsersUpdate(deps.Users, logg))
				r.With(authorize(enums.RolesAdmin)).Put("/{id}/toggle-status", controllers.UsersToggleActive(deps.Users, logg))
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", controllers.DepartmentsList(deps.Departments, logg))
				r.Get("/{id}", controllers.DepartmentsGet(deps.Departments, logg))
				r.Group(func(r chi.Router) {
					r.Use(authorize(enums.RolesAdmin))
					r.Post("/", controllers.DepartmentsCreate(deps.Departments, logg))
					r.Put("/{id}", controllers.DepartmentsUpdate(deps.Departments, logg))
					r.Delete("/{id}", controllers.DepartmentsDelete(deps.Departments, logg))
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", controllers.VehiclesList(deps.Vehicles, logg))
				r.Get("/history/{id}", controllers.VehiclesHistory(deps.Vehicles, logg))
				r.Get("/{id}", controllers.VehiclesGet(deps.Vehicles, logg))
				r.Group(func(r chi.Router) {
					r.Use(authorize(enums.RolesManagement))
					r.Post("/", controllers.VehiclesCreate(deps.Vehicles, logg))
					r.Put("/{id}", controllers.VehiclesUpdate(deps.Vehicles, logg))
				})
				r.With(authorize(enums.RolesAdmin)).Delete("/{id}", controllers.VehiclesDelete(deps.Vehicles, logg))
			})

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", controllers.TripsList(deps.Trips, logg))
				r.Post("/", controllers.TripsCreate(deps.Trips, logg))
				r.Get("/{id}", controllers.TripsGet(deps.Trips, logg))
				r.Put("/{id}", controllers.TripsUpdate(deps.Trips, logg))
				r.Put("/{id}/end", controllers.TripsEnd(deps.Trips, logg))
				r.Put("/{id}/cancel", controllers.TripsCancel(deps.Trips, logg))
			})

			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", controllers.MaintenanceList(deps.Maintenance, logg))
				r.Get("/stats/dashboard", controllers.MaintenanceStats(deps.Maintenance, logg))
				r.Get("/{id}", controllers.MaintenanceGet(deps.Maintenance, logg))
				r.Group(func(r chi.Router) {
					r.Use(authorize(enums.RolesMaintenance))
					r.Post("/", controllers.MaintenanceCreate(deps.Maintenance, logg))
					r.Put("/{id}", controllers.MaintenanceUpdate(deps.Maintenance, logg))
					r.Put("/{id}/complete", controllers.MaintenanceComplete(deps.Maintenance, logg))
					r.Delete("/{id}", controllers.MaintenanceDelete(deps.Maintenance, logg))
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(authorize(enums.RolesManagement))
				r.Get("/dashboard", analyticscontrollers.Dashboard(deps.Analytics, logg))
				r.Get("/vehicles", analyticscontrollers.Vehicles(deps.Analytics, logg))
				r.Get("/trips", analyticscontrollers.Trips(deps.Analytics, logg))
				r.Get("/fuel", analyticscontrollers.Fuel(deps.Analytics, logg))
				r.Get("/maintenance", analyticscontrollers.Maintenance(deps.Analytics, logg))
				r.Get("/departments", analyticscontrollers.Departments(deps.Analytics, logg))
				r.Get("/utilization", analyticscontrollers.Utilization(deps.Analytics, logg))
				r.Get("/drivers", analyticscontrollers.Drivers(deps.Analytics, logg))
			})

			r.With(authorize(enums.RolesManagement)).Get("/reports/{name}", reportcontrollers.Download(deps.Reports, logg))
		})
	})

	return r
}
