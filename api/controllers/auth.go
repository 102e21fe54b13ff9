package controllers

import (
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/middleware"
	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

// AuthLogin exchanges coyno_id and password for a bearer token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "auth")
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client := auth.ClientInfo{
			IPAddress: middleware.ClientIP(r),
			UserAgent: validators.SanitizeString(r.UserAgent(), 255),
		}
		result, err := svc.Login(r.Context(), body, client)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthRegister creates a user on behalf of an admin or manager.
func AuthRegister(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "register")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), auth.Actor{UserID: p.UserID, Role: p.Role}, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthAddAdmin creates an administrator account.
func AuthAddAdmin(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "register")
			return
		}

		var body auth.AddAdminRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddAdmin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogout closes the session row for the presented token. Tokens stay
// valid until expiry; clients discard them.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "auth")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}
		if err := svc.Logout(r.Context(), p.UserID, p.TokenID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, message{Message: "Logged out successfully"})
	}
}

// AuthMe returns the caller's profile.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "auth")
			return
		}
		p, ok := requirePrincipal(w, r, logg)
		if !ok {
			return
		}
		user, err := svc.Me(r.Context(), p.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
