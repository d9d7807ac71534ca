package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

type statusResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready GET /readyz: сервис готов, только если отвечает база
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /readyz - Database is not reachable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}
