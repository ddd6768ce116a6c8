package domain

import "math"

// sliderAgreementTolerance is the maximum human-vs-judge gap, inclusive,
// that still counts as agreement on a slider-valued dimension. Categorical
// dimensions require exact equality after normalization.
const sliderAgreementTolerance = 1.0

// DimensionAgreement is the human-vs-judge agreement rate for one rubric
// dimension, counted over both sides of every eligible record.
type DimensionAgreement struct {
	// Key identifies the dimension.
	Key DimensionKey `json:"key"`

	// Percent is the agreement percentage in [0,100].
	Percent float64 `json:"percent"`
}

// CriterionAgreement is the human-vs-judge agreement rate for one disparity
// criterion. Flags must match exactly; there is no tolerance.
type CriterionAgreement struct {
	// Key identifies the criterion.
	Key CriterionKey `json:"key"`

	// Percent is the agreement percentage in [0,100].
	Percent float64 `json:"percent"`
}

// AgreementReport compares human scores to the LLM judge's scores across the
// eligible subset of a record collection.
type AgreementReport struct {
	// EligibleRecords is the number of records with a completed judge pass
	// that the rates below were computed over.
	EligibleRecords int `json:"eligible_records"`

	// Dimensions holds per-dimension agreement rates in catalog order.
	Dimensions []DimensionAgreement `json:"dimensions"`

	// Criteria holds per-criterion agreement rates in catalog order.
	Criteria []CriterionAgreement `json:"criteria"`
}

// ComputeAgreement measures how often the automated judge matches the human
// reviewer. Only records with a completed judge pass are eligible; each
// eligible record contributes two observations per dimension, one per side.
// A slider dimension agrees when the normalized scores differ by at most 1;
// a categorical dimension agrees only on exact normalized equality. Disparity
// criteria agree only when the stored flags are identical.
//
// Returns ErrNoRecords for an empty input, and ErrNoJudgeData when the input
// is non-empty but no record carries a completed judge pass: agreement over
// zero eligible records is undefined, not 0%.
func ComputeAgreement(catalog *Catalog, records []EvaluationRecord) (*AgreementReport, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	type eligible struct {
		human Assessment
		judge Assessment
	}
	var pairs []eligible
	for _, rec := range records {
		if judge, ok := rec.JudgeScores(); ok {
			pairs = append(pairs, eligible{human: rec.Human, judge: judge})
		}
	}
	if len(pairs) == 0 {
		return nil, ErrNoJudgeData
	}

	report := &AgreementReport{
		EligibleRecords: len(pairs),
		Dimensions:      make([]DimensionAgreement, 0, len(catalog.Dimensions())),
		Criteria:        make([]CriterionAgreement, 0, len(catalog.Criteria())),
	}

	for _, dim := range catalog.Dimensions() {
		agreements := 0
		for _, p := range pairs {
			if scoresAgree(catalog, dim, p.human.SideA, p.judge.SideA) {
				agreements++
			}
			if scoresAgree(catalog, dim, p.human.SideB, p.judge.SideB) {
				agreements++
			}
		}
		report.Dimensions = append(report.Dimensions, DimensionAgreement{
			Key:     dim.Key,
			Percent: float64(agreements) / float64(2*len(pairs)) * 100,
		})
	}

	for _, crit := range catalog.Criteria() {
		agreements := 0
		for _, p := range pairs {
			if p.human.Disparity[crit.Key] == p.judge.Disparity[crit.Key] {
				agreements++
			}
		}
		report.Criteria = append(report.Criteria, CriterionAgreement{
			Key:     crit.Key,
			Percent: float64(agreements) / float64(len(pairs)) * 100,
		})
	}

	return report, nil
}

// scoresAgree applies the dimension's equality rule to one side's human and
// judge scores.
func scoresAgree(catalog *Catalog, dim RubricDimension, human, judge RubricScores) bool {
	h := human.NumericScore(catalog, dim.Key)
	j := judge.NumericScore(catalog, dim.Key)
	if dim.Kind == DimensionSlider {
		return math.Abs(h-j) <= sliderAgreementTolerance
	}
	return h == j
}
