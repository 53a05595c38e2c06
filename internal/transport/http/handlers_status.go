package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sentra/internal/status"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
)

// StatusService defines the live status evaluation operations.
type StatusService interface {
	ControlStatus(ctx context.Context, controlID id.ControlID, arch id.Architecture, sessionID string) (*status.Snapshot, error)
	FrameworkStatus(ctx context.Context, framework id.FrameworkID, arch id.Architecture, sessionID string) ([]status.Snapshot, error)
}

// StatusHandler serves on-demand status computations.
type StatusHandler struct {
	logger *slog.Logger
	status StatusService
}

func NewStatusHandler(status StatusService, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{logger: logger, status: status}
}

func (h *StatusHandler) Register(r chi.Router) {
	r.Get("/controls/{controlID}/status", h.handleControlStatus)
	r.Get("/frameworks/{frameworkID}/status", h.handleFrameworkStatus)
}

func (h *StatusHandler) handleControlStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snapshot, err := h.status.ControlStatus(r.Context(),
		id.ControlID(chi.URLParam(r, "controlID")),
		id.Architecture(q.Get("architecture")),
		q.Get("session"),
	)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *StatusHandler) handleFrameworkStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snapshots, err := h.status.FrameworkStatus(r.Context(),
		id.FrameworkID(chi.URLParam(r, "frameworkID")),
		id.Architecture(q.Get("architecture")),
		q.Get("session"),
	)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"snapshots": snapshots})
}
