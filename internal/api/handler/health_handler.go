package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler checks 為 nil 時只回報程序存活
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"service": "ok"}
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dependency", name).Msg("health check failed")
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		api.ErrorJSON(w, http.StatusServiceUnavailable, apperr.Internal, "dependency unavailable")
		return
	}
	api.SuccessJSON(w, status)
}
