package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sentra/internal/timeline"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

// TimelineService defines the timeline query operation.
type TimelineService interface {
	Query(ctx context.Context, filter timeline.Filter) (*timeline.QueryResult, error)
}

// TimelineHandler serves the activity timeline queries.
type TimelineHandler struct {
	logger   *slog.Logger
	timeline TimelineService
}

func NewTimelineHandler(timeline TimelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{logger: logger, timeline: timeline}
}

func (h *TimelineHandler) Register(r chi.Router) {
	r.Get("/timeline", h.handleQuery)
}

func (h *TimelineHandler) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseTimeParam(q.Get("start"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	end, err := parseTimeParam(q.Get("end"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.timeline.Query(r.Context(), timeline.Filter{
		ControlID:    id.ControlID(q.Get("control_id")),
		Framework:    id.FrameworkID(q.Get("framework")),
		Architecture: id.Architecture(q.Get("architecture")),
		Start:        start,
		End:          end,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

// parseTimeParam parses an RFC 3339 query value. An empty value maps to the
// zero time; the service decides whether that is acceptable.
func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeBadRequest, "invalid timestamp %q, want RFC 3339", raw)
	}
	return t, nil
}
