package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/aquarium/internal/pkg/config"
)

const keyMaintenanceEndpoints = "app.maintenance.endpoints"

// maintenanceBlocked reports whether the request hits an endpoint listed under
// app.maintenance.endpoints. Entries are either a route ("/api/v1/aquariums")
// or a method-qualified route ("POST /api/v1/aquariums").
//
// The list is read per request so a watched config file can toggle
// maintenance without a restart.
func maintenanceBlocked(cfg config.Config, method, route string) bool {
	if cfg == nil {
		return false
	}
	for _, entry := range cfg.GetArray(keyMaintenanceEndpoints) {
		m, path, qualified := strings.Cut(strings.TrimSpace(entry), " ")
		if !qualified {
			path = m
		} else if !strings.EqualFold(m, method) {
			continue
		}
		if strings.TrimSpace(path) == route {
			return true
		}
	}
	return false
}

func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maintenanceBlocked(cfg, r.Method, matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
