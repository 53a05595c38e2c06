package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sentra/internal/status"
	"sentra/internal/timeline"
	"sentra/internal/transport/http/shared"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

// recentActivityWindow bounds the dashboard's activity summary.
const recentActivityWindow = 24 * time.Hour

// DashboardStats is the aggregate view the UI renders on its landing page.
type DashboardStats struct {
	Framework      id.FrameworkID   `json:"framework"`
	TotalControls  int              `json:"total_controls"`
	InPlace        int              `json:"in_place"`
	NotInPlace     int              `json:"not_in_place"`
	NotApplicable  int              `json:"not_applicable"`
	Advisory       int              `json:"advisory"`
	RecentActivity timeline.Summary `json:"recent_activity"`
}

// DashboardHandler aggregates status and timeline data into one response.
type DashboardHandler struct {
	logger   *slog.Logger
	status   StatusService
	timeline TimelineService
}

func NewDashboardHandler(status StatusService, timeline TimelineService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{logger: logger, status: status, timeline: timeline}
}

func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/dashboard/stats", h.handleStats)
}

func (h *DashboardHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	framework := id.FrameworkID(q.Get("framework"))
	if framework == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "framework query parameter is required"))
		return
	}

	snapshots, err := h.status.FrameworkStatus(ctx, framework,
		id.Architecture(q.Get("architecture")), q.Get("session"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	now := requestcontext.Now(ctx)
	activity, err := h.timeline.Query(ctx, timeline.Filter{
		Framework: framework,
		Start:     now.Add(-recentActivityWindow),
		End:       now,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard activity query",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load recent activity"))
		return
	}

	stats := DashboardStats{
		Framework:      framework,
		TotalControls:  len(snapshots),
		RecentActivity: activity.Summary,
	}
	for _, snapshot := range snapshots {
		switch snapshot.Status {
		case status.StatusInPlace:
			stats.InPlace++
		case status.StatusNotInPlace:
			stats.NotInPlace++
		case status.StatusNotApplicable:
			stats.NotApplicable++
		}
		if snapshot.Advisory {
			stats.Advisory++
		}
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}
