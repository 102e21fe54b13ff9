package db

import (
	"context"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

// Probe pings the database once and reports whether it answered. Failures are
// logged and swallowed: the API keeps serving and surfaces per-request errors.
func Probe(ctx context.Context, p Pinger, timeout time.Duration, logg *logger.Logger) bool {
	if p == nil {
		return false
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(probeCtx); err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "database unreachable at boot; continuing")
		}
		return false
	}
	if logg != nil {
		logg.Info(ctx, "database connection established")
	}
	return true
}
