package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	analyticsctl "github.com/angelmondragon/fleetdesk-backend/api/controllers/analytics"
	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/internal/reports"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

// Download renders the report named by the {name} URL parameter as a CSV
// attachment.
func Download(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}
		q, err := analyticsctl.ParseQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		file, err := svc.Generate(ctx, chi.URLParam(r, "name"), q)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCSV(w, file.Filename, file.Content)
	}
}
