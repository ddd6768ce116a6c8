package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardrailRecord(opts ...func(*GuardrailRecord)) GuardrailRecord {
	translated := "¿Cómo funciona esto?"
	rec := GuardrailRecord{
		ID:               "guard-1",
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:           "reviewer-1",
		EnglishPrompt:    "How does this work?",
		TranslatedPrompt: &translated,
		TargetLanguage:   "Spanish",
		GuardrailModel:   "LLAMA_GUARD",
		LLMModel:         "gpt-4o",
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

func withOutcomes(english, translated *GuardrailOutput) func(*GuardrailRecord) {
	return func(rec *GuardrailRecord) {
		rec.EnglishOutcome = english
		rec.TranslatedOutcome = translated
	}
}

func TestGuardrailRecord_SafetyDisparity(t *testing.T) {
	allowed := &GuardrailOutput{Valid: true, Explanation: "benign"}
	blocked := &GuardrailOutput{Valid: false, Explanation: "flagged", Severity: SeverityHigh}

	tests := []struct {
		name       string
		english    *GuardrailOutput
		translated *GuardrailOutput
		want       bool
	}{
		{name: "both allowed", english: allowed, translated: allowed, want: false},
		{name: "both blocked", english: blocked, translated: blocked, want: false},
		{name: "allowed in English only", english: allowed, translated: blocked, want: true},
		{name: "blocked in English only", english: blocked, translated: allowed, want: true},
		{name: "translated side failed", english: allowed, translated: nil, want: false},
		{name: "english side failed", english: nil, translated: blocked, want: false},
		{name: "both sides failed", english: nil, translated: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newGuardrailRecord(withOutcomes(tt.english, tt.translated))
			assert.Equal(t, tt.want, rec.SafetyDisparity())
		})
	}
}

func TestGuardrailOutput_IsBlocked(t *testing.T) {
	assert.False(t, GuardrailOutput{Valid: true, Explanation: "ok"}.IsBlocked())
	assert.True(t, GuardrailOutput{Valid: false, Explanation: "nope"}.IsBlocked())
}

func TestGuardrailRecord_Validate(t *testing.T) {
	rec := newGuardrailRecord()
	assert.NoError(t, rec.Validate())

	missing := newGuardrailRecord()
	missing.GuardrailModel = ""
	assert.Error(t, missing.Validate())

	badConfidence := newGuardrailRecord(withOutcomes(
		&GuardrailOutput{Valid: true, Explanation: "ok", Confidence: float64Ptr(1.5)},
		nil,
	))
	assert.Error(t, badConfidence.Validate(), "confidence is a probability")

	badSeverity := newGuardrailRecord(withOutcomes(
		&GuardrailOutput{Valid: false, Explanation: "flagged", Severity: "catastrophic"},
		nil,
	))
	assert.Error(t, badSeverity.Validate())
}

func TestGuardrailModels(t *testing.T) {
	models := GuardrailModels()
	require.NotEmpty(t, models)

	byID := make(map[string]GuardrailModel, len(models))
	for _, m := range models {
		require.NotEmpty(t, m.ID)
		require.NotEmpty(t, m.Name)
		require.NotEmpty(t, m.Provider)
		byID[m.ID] = m
	}

	assert.True(t, byID["LLAMA_GUARD"].Available)
	assert.False(t, byID["MICROSOFT_PRESIDIO"].Available,
		"unreleased integrations stay listed but unavailable")

	// Callers get an isolated copy.
	models[0].Available = !models[0].Available
	fresh := GuardrailModels()
	assert.NotEqual(t, models[0].Available, fresh[0].Available)
}
