package analytics

import (
	"context"
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type view func(ctx context.Context, q analytics.Query) (any, error)

func serve(svc analytics.Service, logg *logger.Logger, pick func(analytics.Service) view) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}
		q, err := ParseQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := pick(svc)(ctx, q)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Dashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Dashboard(ctx, q) }
	})
}

func Vehicles(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Vehicles(ctx, q) }
	})
}

func Trips(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Trips(ctx, q) }
	})
}

func Fuel(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Fuel(ctx, q) }
	})
}

func Maintenance(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Maintenance(ctx, q) }
	})
}

func Departments(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Departments(ctx, q) }
	})
}

func Utilization(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Utilization(ctx, q) }
	})
}

// Drivers returns the per-driver breakdown.
func Drivers(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(svc, logg, func(s analytics.Service) view {
		return func(ctx context.Context, q analytics.Query) (any, error) { return s.Drivers(ctx, q) }
	})
}
