package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
)

const healthTimeout = 2 * time.Second

var errUnhealthy = errors.New("dependency is unhealthy")

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

func (healthResponse) Message() string { return "Service is healthy" }

// health reports the state of every configured connection. Resources that
// are not configured are reported as "disabled".
func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := map[string]func(context.Context) error{}
	if a.dbConn != nil {
		checks["database"] = a.dbConn.Ping
	}
	if a.cacheConn != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.cacheConn.Ping(ctx).Err()
		}
	}

	resp := healthResponse{
		Status: "ok",
		Dependencies: map[string]string{
			"database": "disabled",
			"redis":    "disabled",
		},
	}

	for name, check := range checks {
		if err := check(ctx); err != nil {
			slog.ErrorContext(ctx, "health check failed", "dependency", name, "error", err)
			return nil, goerror.NewServer(errors.Join(errUnhealthy, err), "Service is unhealthy")
		}
		resp.Dependencies[name] = "ok"
	}

	return resp, nil
}
