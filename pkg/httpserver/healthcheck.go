package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Check is a dependency probe such as redis.Healthcheck(client).
type Check struct {
	Name  string
	Probe func(context.Context) error
}

type healthReport struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

// LivenessHandler always answers 200 {"status":"ok"}.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeReport(w, http.StatusOK, healthReport{Status: "ok"})
	}
}

// ReadinessHandler runs every check with the request context. Any failure
// answers 503 and lists the failed check names.
func ReadinessHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var failed []string
		for _, c := range checks {
			if err := c.Probe(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name), logger.Error(err))
				failed = append(failed, c.Name)
			}
		}
		if len(failed) > 0 {
			writeReport(w, http.StatusServiceUnavailable, healthReport{Status: "unavailable", Failed: failed})
			return
		}
		writeReport(w, http.StatusOK, healthReport{Status: "ok"})
	}
}

func writeReport(w http.ResponseWriter, status int, report healthReport) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}
