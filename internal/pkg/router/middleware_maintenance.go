package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
)

// middlewareMaintenance answers 503 for route patterns listed in
// app.maintenance.endpoints. The list is read once at startup.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, route := range cfg.GetArray("app.maintenance.endpoints") {
			blocked[route] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[routePattern(r)]; ok {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func routePattern(r *http.Request) string {
	if p := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); p != "" {
		return p
	}
	return r.URL.Path
}
