package httptransport

//go:generate mockgen -source=handlers_assurance.go -destination=mocks/assurance-mocks.go -package=mocks

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sentra/internal/assurance"
	"sentra/internal/status"
	"sentra/internal/transport/http/mocks"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

var packWindow = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

func auditPack() assurance.Pack {
	return assurance.Pack{
		ID:    "PACK-20260715-093000-0001",
		Query: "Q3 MFA audit",
		Scope: assurance.Scope{Kind: assurance.ScopeControl, ControlIDs: []id.ControlID{"SWIFT-2.8"}},
		TimeRange: assurance.TimeRange{
			Start: packWindow,
			End:   packWindow.AddDate(0, 3, 0),
		},
		Versions: map[id.ControlID]id.VersionLabel{"SWIFT-2.8": "v1.2"},
		Snapshots: []status.Snapshot{
			{ControlID: "SWIFT-2.8", Status: status.StatusInPlace, Applicable: true, AnswerCount: 10},
		},
		ContentHash: "0f1e2d3c",
		CreatedAt:   packWindow.AddDate(0, 3, 1),
	}
}

func Test_HandleGeneratePack(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAssuranceService(ctrl)
	router := newTestRouter(NewAssuranceHandler(svc, slog.Default(), passthrough))

	pack := auditPack()
	svc.EXPECT().
		GeneratePack(gomock.Any(), assurance.GenerateRequest{
			Query: "Q3 MFA audit",
			Scope: assurance.Scope{
				Kind:       assurance.ScopeControl,
				ControlIDs: []id.ControlID{"SWIFT-2.8"},
			},
			TimeRange:    assurance.TimeRange{Start: pack.TimeRange.Start, End: pack.TimeRange.End},
			Architecture: id.ArchitectureCloudA4,
			SessionID:    "sess-1",
		}).
		Return(&pack, nil)

	payload, err := json.Marshal(GeneratePackRequest{
		Query:        "Q3 MFA audit",
		ScopeKind:    "control",
		ControlIDs:   []string{"SWIFT-2.8"},
		Start:        pack.TimeRange.Start,
		End:          pack.TimeRange.End,
		Architecture: "Cloud A4",
		SessionID:    "sess-1",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/assurance/packs", payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got assurance.Pack
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, pack.ID, got.ID)
	assert.Equal(t, pack.ContentHash, got.ContentHash)
	assert.Equal(t, id.VersionLabel("v1.2"), got.Versions["SWIFT-2.8"])
}

func Test_HandleGeneratePack_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		serviceErr error
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       []byte("{"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty scope",
			body:       []byte(`{"scope_kind":"controls","start":"2026-07-01T00:00:00Z","end":"2026-10-01T00:00:00Z"}`),
			serviceErr: dErrors.New(dErrors.CodeEmptyScope, "pack scope resolves to zero controls"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate pack id",
			body:       []byte(`{"scope_kind":"framework","framework":"SOC2","start":"2026-07-01T00:00:00Z","end":"2026-10-01T00:00:00Z"}`),
			serviceErr: dErrors.New(dErrors.CodeConflict, "pack already exists"),
			wantStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAssuranceService(ctrl)
			router := newTestRouter(NewAssuranceHandler(svc, slog.Default(), passthrough))

			if tt.serviceErr != nil {
				svc.EXPECT().
					GeneratePack(gomock.Any(), gomock.Any()).
					Return(nil, tt.serviceErr)
			}

			rec := doRequest(t, router, http.MethodPost, "/assurance/packs", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func Test_HandleGeneratePack_AuthGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAssuranceService(ctrl)

	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	router := newTestRouter(NewAssuranceHandler(svc, slog.Default(), deny))

	rec := doRequest(t, router, http.MethodPost, "/assurance/packs", []byte(`{}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Pack reads stay open.
	svc.EXPECT().ListPacks(gomock.Any()).Return(nil, nil)
	rec = doRequest(t, router, http.MethodGet, "/assurance/packs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_HandleGetPack(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAssuranceService(ctrl)
	router := newTestRouter(NewAssuranceHandler(svc, slog.Default(), passthrough))

	pack := auditPack()
	svc.EXPECT().GetPack(gomock.Any(), pack.ID).Return(&pack, nil)

	rec := doRequest(t, router, http.MethodGet, "/assurance/packs/"+string(pack.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	svc.EXPECT().
		GetPack(gomock.Any(), id.PackID("PACK-missing")).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "pack PACK-missing not found"))

	rec = doRequest(t, router, http.MethodGet, "/assurance/packs/PACK-missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
