package httptransport

//go:generate mockgen -source=handlers_timeline.go -destination=mocks/timeline-mocks.go -package=mocks

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sentra/internal/timeline"
	"sentra/internal/transport/http/mocks"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

func Test_HandleTimelineQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTimelineService(ctrl)
	router := newTestRouter(NewTimelineHandler(svc, slog.Default()))

	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	result := timeline.QueryResult{
		Events: []timeline.Event{
			{Type: timeline.EventStatusChange, ControlID: "SWIFT-2.8", Timestamp: start.Add(time.Hour)},
		},
		Summary: timeline.Summary{
			TotalEvents:   1,
			StatusChanges: 1,
			ByType:        map[timeline.EventType]int{timeline.EventStatusChange: 1},
		},
	}
	svc.EXPECT().
		Query(gomock.Any(), timeline.Filter{
			ControlID:    "SWIFT-2.8",
			Framework:    id.FrameworkSWIFTCSP,
			Architecture: id.ArchitectureCloudA4,
			Start:        start,
			End:          end,
		}).
		Return(&result, nil)

	query := url.Values{
		"start":        {start.Format(time.RFC3339)},
		"end":          {end.Format(time.RFC3339)},
		"control_id":   {"SWIFT-2.8"},
		"framework":    {"SWIFT_CSP"},
		"architecture": {"Cloud A4"},
	}
	rec := doRequest(t, router, http.MethodGet, "/timeline?"+query.Encode(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got timeline.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Summary.TotalEvents)
	require.Len(t, got.Events, 1)
	assert.Equal(t, id.ControlID("SWIFT-2.8"), got.Events[0].ControlID)
}

func Test_HandleTimelineQuery_BadTimestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTimelineService(ctrl)
	router := newTestRouter(NewTimelineHandler(svc, slog.Default()))

	rec := doRequest(t, router, http.MethodGet, "/timeline?start=yesterday&end=2026-06-01T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_request")
}

func Test_HandleTimelineQuery_MissingRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTimelineService(ctrl)
	router := newTestRouter(NewTimelineHandler(svc, slog.Default()))

	// Empty params reach the service as zero times; it rejects them.
	svc.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeValidation, "timeline query requires both start and end"))

	rec := doRequest(t, router, http.MethodGet, "/timeline", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
