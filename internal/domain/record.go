package domain

import (
	"time"
)

// Sentinel values used by the evaluation filter.
const (
	// FacetAll is the wildcard filter value matching every language pair or model.
	FacetAll = "All"

	// SameLanguageControl is the language-pair label of same-language control
	// records. Controls calibrate reviewers and are excluded from every
	// disparity view.
	SameLanguageControl = "English - English"
)

// DisparityFlag is a reviewer's answer to one disparity criterion.
type DisparityFlag string

const (
	// FlagYes indicates the criterion's inconsistency was observed.
	FlagYes DisparityFlag = "yes"

	// FlagNo indicates the criterion's inconsistency was not observed.
	FlagNo DisparityFlag = "no"

	// FlagUnsure indicates the reviewer could not decide.
	FlagUnsure DisparityFlag = "unsure"
)

// JudgeStatus tracks the lifecycle of the automated judge pass on a record.
type JudgeStatus string

const (
	// JudgePending indicates a judge pass was requested but has not finished.
	JudgePending JudgeStatus = "pending"

	// JudgeCompleted indicates the judge pass finished and scores are attached.
	JudgeCompleted JudgeStatus = "completed"

	// JudgeFailed indicates the judge pass failed; no scores are usable.
	JudgeFailed JudgeStatus = "failed"
)

// ScoreValue is one raw stored rubric value: either a numeric 1-5 slider
// value or a categorical severity label. Exactly one representation is set.
type ScoreValue struct {
	// Number holds the stored slider value. Meaningful only when Label is empty.
	Number float64 `json:"number,omitempty"`

	// Label holds the stored categorical label. When non-empty it takes
	// precedence over Number.
	Label string `json:"label,omitempty"`
}

// NumberValue constructs a numeric slider score value.
func NumberValue(v float64) ScoreValue { return ScoreValue{Number: v} }

// LabelValue constructs a categorical score value.
func LabelValue(label string) ScoreValue { return ScoreValue{Label: label} }

// IsLabel reports whether the value is categorical.
func (v ScoreValue) IsLabel() bool { return v.Label != "" }

// RubricScores holds one stored value per rubric dimension for a single
// response side.
type RubricScores map[DimensionKey]ScoreValue

// DisparityScores holds one categorical flag per disparity criterion.
type DisparityScores map[CriterionKey]DisparityFlag

// Assessment is one complete scoring pass over a record: per-side rubric
// scores plus the per-criterion disparity flags. Both human reviewers and
// the LLM judge produce this shape, which is what makes agreement
// computation possible.
type Assessment struct {
	// SideA holds the rubric scores for the first compared response
	// (typically English).
	SideA RubricScores `json:"side_a" validate:"required"`

	// SideB holds the rubric scores for the second compared response
	// (typically the native language).
	SideB RubricScores `json:"side_b" validate:"required"`

	// Disparity holds the per-criterion yes/no/unsure flags.
	Disparity DisparityScores `json:"disparity" validate:"required"`
}

// Complete reports whether the assessment covers every catalog dimension on
// both sides and every catalog criterion. Aggregators assume completeness;
// the evaluation workflow must hold back records that fail this check.
func (a Assessment) Complete(catalog *Catalog) bool {
	for _, dim := range catalog.Dimensions() {
		if _, ok := a.SideA[dim.Key]; !ok {
			return false
		}
		if _, ok := a.SideB[dim.Key]; !ok {
			return false
		}
	}
	for _, crit := range catalog.Criteria() {
		if _, ok := a.Disparity[crit.Key]; !ok {
			return false
		}
	}
	return true
}

// JudgeResult is the all-or-nothing automated judge attachment on a record.
// Either Scores is fully populated and Status is JudgeCompleted, or the
// result is treated as absent for every aggregation purpose. A zero
// JudgeResult means no judge pass was requested.
type JudgeResult struct {
	// Status is the lifecycle state of the judge pass. Empty means no pass
	// was requested.
	Status JudgeStatus `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed"`

	// Scores holds the judge's assessment. Populated only when Status is
	// JudgeCompleted.
	Scores *Assessment `json:"scores,omitempty"`
}

// GenerationMetrics captures per-side generation performance.
type GenerationMetrics struct {
	// GenerationSeconds is the elapsed generation time. Nil when the
	// evaluation workflow did not capture a timing for this side.
	GenerationSeconds *float64 `json:"generation_seconds,omitempty" validate:"omitempty,min=0"`

	// AnswerWords is the response word count.
	AnswerWords int `json:"answer_words" validate:"min=0"`

	// ReasoningWords is the reasoning word count. Nil when reasoning was not
	// requested for this side.
	ReasoningWords *int `json:"reasoning_words,omitempty" validate:"omitempty,min=0"`
}

// WordsPerSecond returns the derived generation rate for this side.
// Returns false when no timing was captured or the timing is zero.
func (m GenerationMetrics) WordsPerSecond() (float64, bool) {
	if m.GenerationSeconds == nil || *m.GenerationSeconds <= 0 {
		return 0, false
	}
	return float64(m.AnswerWords) / *m.GenerationSeconds, true
}

// EvaluationRecord is one completed comparison between two LLM responses.
// Records are created by the evaluation workflow after both sides' generation
// and human scoring are complete, optionally mutated exactly once to attach
// a judge result, and otherwise immutable. The analytics engine only reads.
type EvaluationRecord struct {
	// ID uniquely identifies the record.
	ID string `json:"id" validate:"required"`

	// CreatedAt records when the evaluation was completed.
	CreatedAt time.Time `json:"created_at" validate:"required"`

	// UserID identifies the reviewer who owns the record.
	UserID string `json:"user_id" validate:"required"`

	// ScenarioID identifies the prompt scenario the record evaluates.
	ScenarioID string `json:"scenario_id,omitempty"`

	// Model identifies the LLM that produced both responses.
	Model string `json:"model" validate:"required"`

	// LanguagePair labels which two response variants the record compares,
	// e.g. "English - Spanish". SameLanguageControl denotes a control record.
	LanguagePair string `json:"language_pair" validate:"required"`

	// SideA holds generation performance for the first response.
	SideA GenerationMetrics `json:"side_a_metrics"`

	// SideB holds generation performance for the second response.
	SideB GenerationMetrics `json:"side_b_metrics"`

	// Human is the reviewer's assessment. Always present and complete once
	// the record is considered evaluated.
	Human Assessment `json:"human" validate:"required"`

	// Judge is the optional automated judge result.
	Judge JudgeResult `json:"judge,omitempty"`
}

// Validate checks structural constraints on the record.
// Returns nil if valid, or a validation error describing the first violation.
func (r *EvaluationRecord) Validate() error { return validate.Struct(r) }

// ValidateComplete checks structural constraints plus human-score
// completeness against the catalog. The evaluation workflow runs this before
// handing a record to the analytics engine.
func (r *EvaluationRecord) ValidateComplete(catalog *Catalog) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.Human.Complete(catalog) {
		return ErrIncompleteScores
	}
	return nil
}

// JudgeScores returns the judge assessment when the judge pass completed
// with fully populated scores. Any other state - absent, pending, failed,
// or completed with missing scores - reads as absent.
func (r *EvaluationRecord) JudgeScores() (Assessment, bool) {
	if r.Judge.Status != JudgeCompleted || r.Judge.Scores == nil {
		return Assessment{}, false
	}
	return *r.Judge.Scores, true
}

// IsControl reports whether the record is a same-language control.
func (r *EvaluationRecord) IsControl() bool {
	return r.LanguagePair == SameLanguageControl
}
