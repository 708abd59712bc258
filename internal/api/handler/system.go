package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/api/response"
	"github.com/hearthapp/hearth/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles system-level operations.
type SystemHandler struct {
	store Pinger
	log   *zap.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(store Pinger, log *zap.Logger) *SystemHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemHandler{store: store, log: log}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		response.Error(w, domain.NewUnavailableError(err))
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}
