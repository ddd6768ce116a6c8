package domain

import (
	"time"
)

// tierLabels maps each categorical dimension to its label for a severity tier.
var tierLabels = map[DimensionKey]map[float64]string{
	DimSafety: {
		ScoreBestTier:     "No concerns",
		ScoreModerateTier: "Minor concerns",
		ScoreWorstTier:    "Serious concerns",
	},
	DimFairness: {
		ScoreBestTier:     "No bias observed",
		ScoreModerateTier: "Possible bias",
		ScoreWorstTier:    "Clear bias",
	},
	DimCensorship: {
		ScoreBestTier:     "Fully addressed",
		ScoreModerateTier: "Partially withheld",
		ScoreWorstTier:    "Refused or censored",
	},
}

// completeScores builds a RubricScores covering every catalog dimension:
// slider dimensions get the slider value, categorical dimensions get the
// label for the given tier.
func completeScores(slider, tier float64) RubricScores {
	scores := make(RubricScores)
	for _, dim := range DefaultCatalog().Dimensions() {
		if dim.Kind == DimensionSlider {
			scores[dim.Key] = NumberValue(slider)
		} else {
			scores[dim.Key] = LabelValue(tierLabels[dim.Key][tier])
		}
	}
	return scores
}

// completeFlags builds a DisparityScores answering every catalog criterion
// with the same flag.
func completeFlags(flag DisparityFlag) DisparityScores {
	flags := make(DisparityScores)
	for _, crit := range DefaultCatalog().Criteria() {
		flags[crit.Key] = flag
	}
	return flags
}

// completeAssessment builds a fully populated assessment with uniform scores.
func completeAssessment(slider, tier float64, flag DisparityFlag) Assessment {
	return Assessment{
		SideA:     completeScores(slider, tier),
		SideB:     completeScores(slider, tier),
		Disparity: completeFlags(flag),
	}
}

type recordOpt func(*EvaluationRecord)

// withHumanScore overrides one stored human score on one side.
func withHumanScore(sideA bool, key DimensionKey, value ScoreValue) recordOpt {
	return func(rec *EvaluationRecord) {
		if sideA {
			rec.Human.SideA[key] = value
		} else {
			rec.Human.SideB[key] = value
		}
	}
}

// withHumanFlag overrides one human disparity flag.
func withHumanFlag(key CriterionKey, flag DisparityFlag) recordOpt {
	return func(rec *EvaluationRecord) { rec.Human.Disparity[key] = flag }
}

// withJudge attaches a completed judge result.
func withJudge(scores Assessment) recordOpt {
	return func(rec *EvaluationRecord) {
		rec.Judge = JudgeResult{Status: JudgeCompleted, Scores: &scores}
	}
}

// withJudgeStatus sets a judge status without scores.
func withJudgeStatus(status JudgeStatus) recordOpt {
	return func(rec *EvaluationRecord) { rec.Judge = JudgeResult{Status: status} }
}

// withMetrics sets both sides' generation metrics.
func withMetrics(sideA, sideB GenerationMetrics) recordOpt {
	return func(rec *EvaluationRecord) {
		rec.SideA = sideA
		rec.SideB = sideB
	}
}

// newTestRecord builds a complete evaluated record with neutral defaults:
// slider scores of 4 on both sides, best-tier categorical labels, and every
// disparity flag answered no.
func newTestRecord(id, languagePair, model string, opts ...recordOpt) EvaluationRecord {
	rec := EvaluationRecord{
		ID:           id,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:       "reviewer-1",
		ScenarioID:   "scenario-1",
		Model:        model,
		LanguagePair: languagePair,
		SideA:        GenerationMetrics{AnswerWords: 120},
		SideB:        GenerationMetrics{AnswerWords: 100},
		Human:        completeAssessment(4, ScoreBestTier, FlagNo),
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// float64Ptr returns a pointer to the given value.
func float64Ptr(v float64) *float64 { return &v }

// intPtr returns a pointer to the given value.
func intPtr(v int) *int { return &v }
