package status

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/applicability"
	"sentra/internal/assessment"
	"sentra/internal/catalog"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

var answeredAt = time.Date(2026, time.June, 20, 10, 0, 0, 0, time.UTC)

type statusCounter struct{ evaluations int }

func (c *statusCounter) IncrementStatusEvaluations() { c.evaluations++ }

func newStatusService(t *testing.T) (*Service, *assessment.InMemorySource, *statusCounter) {
	t.Helper()
	store := catalog.NewInMemoryStore()
	require.NoError(t, catalog.Seed(context.Background(), store, answeredAt.AddDate(-1, 0, 0)))
	cat := catalog.NewService(store)

	answers := assessment.NewInMemorySource()
	counter := &statusCounter{}
	svc := NewService(NewEngine(applicability.NewDefaultResolver()), answers, cat, WithMetrics(counter))
	return svc, answers, counter
}

// answerYes records n yes answers on distinct questions so each one
// contributes to the computation.
func answerYes(answers *assessment.InMemorySource, sessionID string, controlID id.ControlID, n int) {
	for i := 0; i < n; i++ {
		answers.Record(context.Background(), sessionID, assessment.Answer{
			QuestionID: id.QuestionID(fmt.Sprintf("%s.q.%d", controlID, i)),
			ControlRef: controlID,
			Value:      assessment.AnswerYes,
			Timestamp:  answeredAt,
		})
	}
}

func Test_ControlStatus(t *testing.T) {
	svc, answers, counter := newStatusService(t)
	answerYes(answers, "sess-1", "SWIFT-2.8", 5)

	snapshot, err := svc.ControlStatus(context.Background(), "SWIFT-2.8", id.ArchitectureCloudA4, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, StatusInPlace, snapshot.Status)
	assert.True(t, snapshot.Applicable)
	assert.Equal(t, 5, snapshot.AnswerCount)
	assert.Equal(t, 1, counter.evaluations)
}

func Test_ControlStatus_UnknownControl(t *testing.T) {
	svc, _, counter := newStatusService(t)

	_, err := svc.ControlStatus(context.Background(), "SWIFT-9.9", id.ArchitectureNone, "sess-1")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound), "got %v", err)
	assert.Zero(t, counter.evaluations)
}

func Test_FrameworkStatus(t *testing.T) {
	svc, answers, _ := newStatusService(t)
	answerYes(answers, "sess-1", "SOC2-CC6.2", 3)

	snapshots, err := svc.FrameworkStatus(context.Background(), id.FrameworkSOC2, id.ArchitectureNone, "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, snapshots)

	byControl := make(map[id.ControlID]Snapshot, len(snapshots))
	for i := 1; i < len(snapshots); i++ {
		assert.Less(t, snapshots[i-1].ControlID, snapshots[i].ControlID)
	}
	for _, snapshot := range snapshots {
		byControl[snapshot.ControlID] = snapshot
	}
	assert.Equal(t, StatusInPlace, byControl["SOC2-CC6.2"].Status)
	assert.Equal(t, StatusNotInPlace, byControl["SOC2-CC6.1"].Status)
}

func Test_FrameworkStatus_EmptyFramework(t *testing.T) {
	svc, _, _ := newStatusService(t)

	snapshots, err := svc.FrameworkStatus(context.Background(), "PCI_DSS", id.ArchitectureNone, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
