package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "sentra/pkg/domain"
)

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func answer(questionID string, value AnswerValue, at time.Time) Answer {
	return Answer{QuestionID: id.QuestionID(questionID), Value: value, Timestamp: at}
}

func Test_AnswerValue_Valid(t *testing.T) {
	assert.True(t, AnswerYes.Valid())
	assert.True(t, AnswerNo.Valid())
	assert.True(t, AnswerPartial.Valid())
	assert.False(t, AnswerValue("maybe").Valid())
	assert.False(t, AnswerValue("").Valid())
}

func Test_Answer_Control_PrefersTypedRef(t *testing.T) {
	a := Answer{QuestionID: "SWIFT-2.8.a.1", ControlRef: "SOC2-CC6.2"}
	assert.Equal(t, id.ControlID("SOC2-CC6.2"), a.Control())
}

func Test_Answer_Control_FallsBackToQuestionID(t *testing.T) {
	a := Answer{QuestionID: "SWIFT-2.8.a.1"}
	assert.Equal(t, id.ControlID("SWIFT-2.8"), a.Control())

	// An unparseable question id with no typed ref yields no control.
	broken := Answer{QuestionID: "broken"}
	assert.True(t, broken.Control().IsNil())
}

func Test_Latest_KeepsMostRecentPerQuestion(t *testing.T) {
	answers := []Answer{
		answer("SWIFT-2.8.a.1", AnswerNo, baseTime),
		answer("SWIFT-2.8.a.2", AnswerYes, baseTime),
		answer("SWIFT-2.8.a.1", AnswerYes, baseTime.Add(time.Hour)),
	}

	latest := Latest(answers)
	require.Len(t, latest, 2)
	assert.Equal(t, AnswerYes, latest[0].Value)
	assert.Equal(t, id.QuestionID("SWIFT-2.8.a.1"), latest[0].QuestionID)
	assert.Equal(t, id.QuestionID("SWIFT-2.8.a.2"), latest[1].QuestionID)
}

func Test_Latest_TimestampTieKeepsLaterEntry(t *testing.T) {
	answers := []Answer{
		answer("SWIFT-2.8.a.1", AnswerNo, baseTime),
		answer("SWIFT-2.8.a.1", AnswerYes, baseTime),
	}

	latest := Latest(answers)
	require.Len(t, latest, 1)
	assert.Equal(t, AnswerYes, latest[0].Value)
}

func Test_ForControl(t *testing.T) {
	answers := []Answer{
		answer("SWIFT-2.8.a.1", AnswerYes, baseTime),
		answer("SWIFT-1.1.b.1", AnswerNo, baseTime),
		answer("SWIFT-2.8.c.3", AnswerPartial, baseTime),
	}

	selected := ForControl(answers, "SWIFT-2.8")
	require.Len(t, selected, 2)
	for _, a := range selected {
		assert.Equal(t, id.ControlID("SWIFT-2.8"), a.Control())
	}
}

func Test_InRange_BoundsAreInclusive(t *testing.T) {
	start := baseTime
	end := baseTime.Add(2 * time.Hour)
	answers := []Answer{
		answer("q.1", AnswerYes, start.Add(-time.Second)),
		answer("q.2", AnswerYes, start),
		answer("q.3", AnswerYes, start.Add(time.Hour)),
		answer("q.4", AnswerYes, end),
		answer("q.5", AnswerYes, end.Add(time.Second)),
	}

	selected := InRange(answers, start, end)
	require.Len(t, selected, 3)
	assert.Equal(t, id.QuestionID("q.2"), selected[0].QuestionID)
	assert.Equal(t, id.QuestionID("q.4"), selected[2].QuestionID)
}
