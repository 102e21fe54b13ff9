package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
)

const healthPingTimeout = 2 * time.Second

type healthPayload struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
}

// Health is a liveness probe. It reports database reachability but always
// answers 200.
func Health(cfg *config.Config, pinger db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := healthPayload{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Environment: cfg.App.Env,
			Database:    "down",
		}
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err == nil {
				payload.Database = "up"
			}
		}
		responses.WriteSuccess(w, payload)
	}
}
