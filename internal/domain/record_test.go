package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationMetrics_WordsPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		metrics  GenerationMetrics
		expected float64
		ok       bool
	}{
		{
			name:     "timed generation",
			metrics:  GenerationMetrics{GenerationSeconds: float64Ptr(60), AnswerWords: 120},
			expected: 2, // 120 words / 60 s
			ok:       true,
		},
		{
			name:    "no timing captured",
			metrics: GenerationMetrics{AnswerWords: 120},
			ok:      false,
		},
		{
			name:    "zero timing",
			metrics: GenerationMetrics{GenerationSeconds: float64Ptr(0), AnswerWords: 120},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, ok := tt.metrics.WordsPerSecond()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, rate, 0.0001)
			}
		})
	}
}

func TestEvaluationRecord_JudgeScores(t *testing.T) {
	judgeScores := completeAssessment(5, ScoreBestTier, FlagNo)

	tests := []struct {
		name   string
		judge  JudgeResult
		absent bool
	}{
		{"no judge pass requested", JudgeResult{}, true},
		{"pending pass", JudgeResult{Status: JudgePending}, true},
		{"failed pass", JudgeResult{Status: JudgeFailed}, true},
		{"completed without scores", JudgeResult{Status: JudgeCompleted}, true},
		{"completed with scores", JudgeResult{Status: JudgeCompleted, Scores: &judgeScores}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestRecord("rec-1", "English - Spanish", "gpt-4o")
			rec.Judge = tt.judge

			scores, ok := rec.JudgeScores()
			assert.Equal(t, !tt.absent, ok)
			if !tt.absent {
				assert.Equal(t, judgeScores, scores)
			}
		})
	}
}

func TestAssessment_Complete(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("fully populated", func(t *testing.T) {
		assert.True(t, completeAssessment(4, ScoreBestTier, FlagNo).Complete(catalog))
	})

	t.Run("missing dimension on side B", func(t *testing.T) {
		a := completeAssessment(4, ScoreBestTier, FlagNo)
		delete(a.SideB, DimTone)
		assert.False(t, a.Complete(catalog))
	})

	t.Run("missing dimension on side A", func(t *testing.T) {
		a := completeAssessment(4, ScoreBestTier, FlagNo)
		delete(a.SideA, DimFactuality)
		assert.False(t, a.Complete(catalog))
	})

	t.Run("missing criterion", func(t *testing.T) {
		a := completeAssessment(4, ScoreBestTier, FlagNo)
		delete(a.Disparity, CritSafetyGap)
		assert.False(t, a.Complete(catalog))
	})
}

func TestEvaluationRecord_ValidateComplete(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("valid complete record", func(t *testing.T) {
		rec := newTestRecord("rec-1", "English - Spanish", "gpt-4o")
		assert.NoError(t, rec.ValidateComplete(catalog))
	})

	t.Run("incomplete human scores", func(t *testing.T) {
		rec := newTestRecord("rec-1", "English - Spanish", "gpt-4o")
		delete(rec.Human.SideA, DimSafety)

		err := rec.ValidateComplete(catalog)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompleteScores)
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := EvaluationRecord{ID: "rec-1", CreatedAt: time.Now()}
		assert.Error(t, rec.ValidateComplete(catalog))
	})
}

func TestEvaluationRecord_IsControl(t *testing.T) {
	control := newTestRecord("rec-1", SameLanguageControl, "gpt-4o")
	assert.True(t, control.IsControl())

	regular := newTestRecord("rec-2", "English - Spanish", "gpt-4o")
	assert.False(t, regular.IsControl())
}

func TestScoreValue_Constructors(t *testing.T) {
	n := NumberValue(4)
	assert.False(t, n.IsLabel())
	assert.Equal(t, 4.0, n.Number)

	l := LabelValue("No concerns")
	assert.True(t, l.IsLabel())
	assert.Equal(t, "No concerns", l.Label)
}
