package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// TempbanSweep is the scheduled tempban sweeper, also run on demand
type TempbanSweep interface {
	RunOnce(ctx context.Context) (int, error)
	IsRunning() bool
}

// AdminHandler handles the administrator operations endpoints
type AdminHandler struct {
	sweeper     TempbanSweep
	hub         *service.EventHub
	storage     Pinger
	storageName string
	now         func() time.Time
}

// AdminHandlerConfig holds configuration for the admin handler
type AdminHandlerConfig struct {
	Sweeper     TempbanSweep
	Hub         *service.EventHub
	Storage     Pinger
	StorageName string
	Now         func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AdminHandler{
		sweeper:     cfg.Sweeper,
		hub:         cfg.Hub,
		storage:     cfg.Storage,
		storageName: cfg.StorageName,
		now:         now,
	}
}

// Health handles GET /api/admin/health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			slog.Error("storage health check failed",
				slog.String("storage", h.storageName),
				slog.String("error", err.Error()),
			)
			WriteError(w, model.NewInternalError("Storage unavailable"))
			return
		}
	}

	health := model.HealthStatus{
		Status:            "ok",
		Time:              h.now().UTC(),
		Storage:           h.storageName,
		SweeperRunning:    h.sweeper.IsRunning(),
		StreamSubscribers: h.hub.SubscriberCount(),
	}
	WriteOK(w, Envelope{
		"status":            health.Status,
		"time":              health.Time,
		"storage":           health.Storage,
		"sweeperRunning":    health.SweeperRunning,
		"streamSubscribers": health.StreamSubscribers,
	})
}

// Backfill handles POST /api/admin/backfill.
// It runs the tempban sweep now instead of waiting for the next tick.
func (h *AdminHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.sweeper.RunOnce(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteOK(w, Envelope{
		"message": "Backfill completed",
		"cleared": cleared,
	})
}
