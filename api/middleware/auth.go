package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	pkgAuth "github.com/angelmondragon/fleetdesk-backend/pkg/auth"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

const (
	msgUserNotFound    = "User not found"
	msgUserDeactivated = "User account is deactivated"
)

// UserLoader resolves the account referenced by a token.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Auth validates the bearer token, reloads the referenced user and rejects
// unknown or deactivated accounts before seeding the request context.
func Auth(cfg config.JWTConfig, users UserLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := validators.BearerToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, pkgerrors.MsgNoToken))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Classify(err))
				return
			}

			if users == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user loader not configured"))
				return
			}
			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				if db.IsNotFound(err) {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msgUserNotFound))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user"))
				return
			}
			if !user.IsActive {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgUserDeactivated))
				return
			}

			// The stored role wins over the claim so demotions apply immediately.
			ctx = WithPrincipal(ctx, Principal{
				UserID:  user.ID,
				CoynoID: user.CoynoID,
				Role:    user.UserRole,
				TokenID: claims.ID,
			})
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
				ctx = logg.WithActorRole(ctx, user.UserRole.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
