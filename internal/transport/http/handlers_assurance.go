package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sentra/internal/assurance"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

// AssuranceService defines the pack operations the HTTP layer exposes.
type AssuranceService interface {
	GeneratePack(ctx context.Context, req assurance.GenerateRequest) (*assurance.Pack, error)
	GetPack(ctx context.Context, packID id.PackID) (*assurance.Pack, error)
	ListPacks(ctx context.Context) ([]assurance.Pack, error)
}

// GeneratePackRequest is the wire form of a pack generation call.
type GeneratePackRequest struct {
	Query        string    `json:"query,omitempty"`
	ScopeKind    string    `json:"scope_kind"`
	Framework    string    `json:"framework,omitempty"`
	ControlIDs   []string  `json:"control_ids,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Architecture string    `json:"architecture,omitempty"`
	SessionID    string    `json:"session_id,omitempty"`
}

// AssuranceHandler serves pack generation and retrieval.
type AssuranceHandler struct {
	logger    *slog.Logger
	assurance AssuranceService
	auth      func(http.Handler) http.Handler
}

func NewAssuranceHandler(assurance AssuranceService, logger *slog.Logger, auth func(http.Handler) http.Handler) *AssuranceHandler {
	return &AssuranceHandler{logger: logger, assurance: assurance, auth: auth}
}

func (h *AssuranceHandler) Register(r chi.Router) {
	r.With(h.auth).Post("/assurance/packs", h.handleGeneratePack)
	r.Get("/assurance/packs", h.handleListPacks)
	r.Get("/assurance/packs/{packID}", h.handleGetPack)
}

func (h *AssuranceHandler) handleGeneratePack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var wire GeneratePackRequest
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		h.logger.WarnContext(ctx, "invalid generate pack request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	controlIDs := make([]id.ControlID, 0, len(wire.ControlIDs))
	for _, raw := range wire.ControlIDs {
		controlIDs = append(controlIDs, id.ControlID(raw))
	}

	pack, err := h.assurance.GeneratePack(ctx, assurance.GenerateRequest{
		Query: wire.Query,
		Scope: assurance.Scope{
			Kind:       assurance.ScopeKind(wire.ScopeKind),
			Framework:  id.FrameworkID(wire.Framework),
			ControlIDs: controlIDs,
		},
		TimeRange:    assurance.TimeRange{Start: wire.Start, End: wire.End},
		Architecture: id.Architecture(wire.Architecture),
		SessionID:    wire.SessionID,
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "generate pack",
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, pack)
}

func (h *AssuranceHandler) handleListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.assurance.ListPacks(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"packs": packs})
}

func (h *AssuranceHandler) handleGetPack(w http.ResponseWriter, r *http.Request) {
	pack, err := h.assurance.GetPack(r.Context(), id.PackID(chi.URLParam(r, "packID")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, pack)
}
