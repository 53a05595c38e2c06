package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sentra/internal/catalog"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

// CatalogService defines the catalog operations the HTTP layer exposes.
type CatalogService interface {
	ListControls(ctx context.Context) ([]catalog.Control, error)
	ListControlsByFramework(ctx context.Context, framework id.FrameworkID) ([]catalog.Control, error)
	GetControl(ctx context.Context, controlID id.ControlID) (*catalog.Control, error)
	Overlaps(controlID id.ControlID) []id.ControlID
	ListVersions(ctx context.Context, controlID id.ControlID) ([]catalog.ControlVersion, error)
	GetActiveVersion(ctx context.Context, controlID id.ControlID) (*catalog.ControlVersion, error)
	CreateVersion(ctx context.Context, controlID id.ControlID, input catalog.VersionInput) (*catalog.ControlVersion, error)
}

// CatalogHandler serves the control catalog endpoints.
type CatalogHandler struct {
	logger  *slog.Logger
	catalog CatalogService
	admin   func(http.Handler) http.Handler
}

func NewCatalogHandler(catalog CatalogService, logger *slog.Logger, admin func(http.Handler) http.Handler) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: catalog, admin: admin}
}

// Register mounts the catalog routes. Version creation additionally passes
// through the admin guard.
func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/controls", h.handleListControls)
	r.Get("/controls/{controlID}", h.handleGetControl)
	r.Get("/controls/{controlID}/overlaps", h.handleOverlaps)
	r.Get("/controls/{controlID}/versions", h.handleListVersions)
	r.Get("/controls/{controlID}/versions/active", h.handleActiveVersion)
	r.With(h.admin).Post("/controls/{controlID}/versions", h.handleCreateVersion)
}

func (h *CatalogHandler) handleListControls(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		controls []catalog.Control
		err      error
	)
	if framework := r.URL.Query().Get("framework"); framework != "" {
		controls, err = h.catalog.ListControlsByFramework(ctx, id.FrameworkID(framework))
	} else {
		controls, err = h.catalog.ListControls(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list controls",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"controls": controls})
}

func (h *CatalogHandler) handleGetControl(w http.ResponseWriter, r *http.Request) {
	control, err := h.catalog.GetControl(r.Context(), id.ControlID(chi.URLParam(r, "controlID")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, control)
}

func (h *CatalogHandler) handleOverlaps(w http.ResponseWriter, r *http.Request) {
	controlID := id.ControlID(chi.URLParam(r, "controlID"))
	if _, err := h.catalog.GetControl(r.Context(), controlID); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"control_id": controlID,
		"overlaps":   h.catalog.Overlaps(controlID),
	})
}

func (h *CatalogHandler) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.catalog.ListVersions(r.Context(), id.ControlID(chi.URLParam(r, "controlID")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

func (h *CatalogHandler) handleActiveVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.catalog.GetActiveVersion(r.Context(), id.ControlID(chi.URLParam(r, "controlID")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, version)
}

func (h *CatalogHandler) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input catalog.VersionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.WarnContext(ctx, "invalid create version request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	version, err := h.catalog.CreateVersion(ctx, id.ControlID(chi.URLParam(r, "controlID")), input)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) || dErrors.Is(err, dErrors.CodeConflict) || dErrors.Is(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "create version",
			"request_id", requestcontext.RequestID(ctx),
			"control_id", chi.URLParam(r, "controlID"),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to create version"))
		return
	}
	shared.WriteJSON(w, http.StatusCreated, version)
}
