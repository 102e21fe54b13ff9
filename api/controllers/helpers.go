package controllers

import (
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/middleware"
	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type message struct {
	Message string `json:"message"`
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeInternal, "%s service unavailable", name))
}

// requirePrincipal writes 401 and returns false when Auth did not run.
func requirePrincipal(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (middleware.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.UserID == 0 {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.MsgNoToken))
		return middleware.Principal{}, false
	}
	return p, true
}
