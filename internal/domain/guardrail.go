package domain

import "time"

// GuardrailSeverity grades how severe flagged content is.
type GuardrailSeverity string

const (
	// SeverityLow marks mildly concerning content.
	SeverityLow GuardrailSeverity = "low"

	// SeverityMedium marks moderately concerning content.
	SeverityMedium GuardrailSeverity = "medium"

	// SeverityHigh marks severely concerning content.
	SeverityHigh GuardrailSeverity = "high"
)

// GuardrailOutput is one guardrail model's classification of a single
// response. The field set is part of the persisted record contract;
// downstream disparity analysis keys off Valid.
type GuardrailOutput struct {
	// Valid reports whether the guardrail allowed the content.
	Valid bool `json:"valid"`

	// Explanation is the guardrail's free-text rationale.
	Explanation string `json:"explanation" validate:"required"`

	// Confidence is the guardrail's confidence in the classification, when
	// the model reports one.
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`

	// Categories lists the violation categories the guardrail flagged.
	Categories []string `json:"categories,omitempty"`

	// Severity grades the flagged content, when the model reports one.
	Severity GuardrailSeverity `json:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
}

// IsBlocked reports whether the guardrail blocked the content.
func (o GuardrailOutput) IsBlocked() bool { return !o.Valid }

// GuardrailRecord is one completed cross-language guardrail evaluation: the
// same prompt run through a guardrail in English and in a target language,
// with both outcomes retained for disparity analysis.
type GuardrailRecord struct {
	// ID uniquely identifies the record.
	ID string `json:"id" validate:"required"`

	// CreatedAt records when the evaluation ran.
	CreatedAt time.Time `json:"created_at" validate:"required"`

	// UserID identifies the reviewer who ran the evaluation.
	UserID string `json:"user_id" validate:"required"`

	// EnglishPrompt is the original prompt.
	EnglishPrompt string `json:"english_prompt" validate:"required"`

	// TranslatedPrompt is the prompt translated into the target language.
	// Nil when translation failed.
	TranslatedPrompt *string `json:"translated_prompt,omitempty"`

	// TargetLanguage names the non-English language under test.
	TargetLanguage string `json:"target_language" validate:"required"`

	// GuardrailModel identifies the guardrail that classified both responses.
	GuardrailModel string `json:"guardrail_model" validate:"required"`

	// LLMModel identifies the model that generated both responses.
	LLMModel string `json:"llm_model" validate:"required"`

	// EnglishResponse is the English-side LLM response, nil on failure.
	EnglishResponse *string `json:"english_response,omitempty"`

	// EnglishOutcome is the guardrail classification of the English response.
	EnglishOutcome *GuardrailOutput `json:"english_outcome,omitempty"`

	// EnglishGenerationSeconds is the English-side generation time.
	EnglishGenerationSeconds *float64 `json:"english_generation_seconds,omitempty"`

	// TranslatedResponse is the translated-side LLM response, nil on failure.
	TranslatedResponse *string `json:"translated_response,omitempty"`

	// TranslatedOutcome is the guardrail classification of the translated
	// response.
	TranslatedOutcome *GuardrailOutput `json:"translated_outcome,omitempty"`

	// TranslatedGenerationSeconds is the translated-side generation time.
	TranslatedGenerationSeconds *float64 `json:"translated_generation_seconds,omitempty"`

	// DisparityAnalysis is an optional free-text analysis of any mismatch.
	DisparityAnalysis *string `json:"disparity_analysis,omitempty"`

	// Notes holds optional reviewer notes.
	Notes string `json:"notes,omitempty"`
}

// Validate checks structural constraints on the record.
func (r *GuardrailRecord) Validate() error { return validate.Struct(r) }

// SafetyDisparity reports whether the guardrail reached different verdicts
// for the two languages. Requires both outcomes; a record with a failed side
// carries no disparity signal.
func (r *GuardrailRecord) SafetyDisparity() bool {
	if r.EnglishOutcome == nil || r.TranslatedOutcome == nil {
		return false
	}
	return r.EnglishOutcome.Valid != r.TranslatedOutcome.Valid
}

// GuardrailModel describes one guardrail available to the evaluation
// workflow.
type GuardrailModel struct {
	// ID is the stable guardrail identifier stored on records.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description summarizes what the guardrail detects.
	Description string `json:"description"`

	// Provider names the organization behind the model.
	Provider string `json:"provider"`

	// Available reports whether the integration is currently usable.
	Available bool `json:"available"`
}

// guardrailModels is the static guardrail catalog.
var guardrailModels = []GuardrailModel{
	{ID: "DEEPSET", Name: "Deepset Guardrail", Description: "Content safety guardrail for detecting harmful content.", Provider: "Deepset", Available: true},
	{ID: "LLAMA_GUARD", Name: "Llama Guard", Description: "Content safety classification model.", Provider: "Meta", Available: true},
	{ID: "OPENAI_MODERATION", Name: "OpenAI Moderation", Description: "Moderation API for detecting harmful content.", Provider: "OpenAI", Available: true},
	{ID: "GLIDER_SAFETY", Name: "Glider Safety", Description: "Detects harmful, dangerous, or unsafe content.", Provider: "PatronusAI", Available: true},
	{ID: "GLIDER_TOXICITY", Name: "Glider Toxicity", Description: "Identifies abusive, hateful, or discriminatory language.", Provider: "PatronusAI", Available: true},
	{ID: "GLIDER_MISINFORMATION", Name: "Glider Misinformation", Description: "Identifies false claims and conspiracy theories.", Provider: "PatronusAI", Available: true},
	{ID: "SHIELD_GEMMA", Name: "Shield Gemma", Description: "Safety classification and content filtering.", Provider: "Google", Available: true},
	{ID: "FLOWJUDGE", Name: "FlowJudge", Description: "Content safety and quality assessment.", Provider: "FlowJudge AI", Available: true},
	{ID: "ANTHROPIC_CONSTITUTIONAL", Name: "Anthropic Constitutional", Description: "Constitutional AI approach for safety.", Provider: "Anthropic", Available: false},
	{ID: "MICROSOFT_PRESIDIO", Name: "Microsoft Presidio", Description: "PII detection and anonymization.", Provider: "Microsoft", Available: false},
}

// GuardrailModels returns the static guardrail catalog.
// Returns a fresh copy to prevent mutation.
func GuardrailModels() []GuardrailModel {
	models := make([]GuardrailModel, len(guardrailModels))
	copy(models, guardrailModels)
	return models
}
