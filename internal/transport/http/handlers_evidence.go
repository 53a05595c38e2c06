package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sentra/internal/evidence"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

// EvidenceService defines the evidence attachment operations.
type EvidenceService interface {
	Attach(ctx context.Context, input evidence.AttachInput) (*evidence.Item, error)
	Detach(ctx context.Context, evidenceID string) error
	ListForControl(ctx context.Context, controlID id.ControlID) ([]evidence.Item, error)
}

// EvidenceHandler serves evidence attach/detach and listing.
type EvidenceHandler struct {
	logger   *slog.Logger
	evidence EvidenceService
	auth     func(http.Handler) http.Handler
}

func NewEvidenceHandler(evidence EvidenceService, logger *slog.Logger, auth func(http.Handler) http.Handler) *EvidenceHandler {
	return &EvidenceHandler{logger: logger, evidence: evidence, auth: auth}
}

func (h *EvidenceHandler) Register(r chi.Router) {
	r.With(h.auth).Post("/evidence", h.handleAttach)
	r.With(h.auth).Delete("/evidence/{evidenceID}", h.handleDetach)
	r.Get("/controls/{controlID}/evidence", h.handleListForControl)
}

func (h *EvidenceHandler) handleAttach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input evidence.AttachInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.WarnContext(ctx, "invalid attach evidence request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	item, err := h.evidence.Attach(ctx, input)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, item)
}

func (h *EvidenceHandler) handleDetach(w http.ResponseWriter, r *http.Request) {
	if err := h.evidence.Detach(r.Context(), chi.URLParam(r, "evidenceID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EvidenceHandler) handleListForControl(w http.ResponseWriter, r *http.Request) {
	items, err := h.evidence.ListForControl(r.Context(), id.ControlID(chi.URLParam(r, "controlID")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"evidence": items})
}
