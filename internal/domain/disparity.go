package domain

import (
	"math"
	"sort"
)

// DimensionDisparity holds the disparity statistics for one rubric dimension
// within one language group: the mean absolute per-record score gap plus the
// per-side means for tooltip context.
type DimensionDisparity struct {
	// Key identifies the dimension.
	Key DimensionKey `json:"key"`

	// MeanAbsGap is the mean of |sideA - sideB| normalized scores across the
	// group's records. Ranges over [0,4] on the 1-5 scale.
	MeanAbsGap float64 `json:"mean_abs_gap"`

	// SideAMean is the group's mean normalized score for the first side.
	SideAMean float64 `json:"side_a_mean"`

	// SideBMean is the group's mean normalized score for the second side.
	SideBMean float64 `json:"side_b_mean"`
}

// LanguageDisparity is one row of the disparity heatmap: per-dimension
// disparity statistics for a single language pair.
type LanguageDisparity struct {
	// LanguagePair labels the group.
	LanguagePair string `json:"language_pair"`

	// RecordCount is the number of records in the group.
	RecordCount int `json:"record_count"`

	// Dimensions holds the per-dimension statistics in catalog order.
	Dimensions []DimensionDisparity `json:"dimensions"`
}

// DisparityByLanguage groups records by language pair and computes, per group
// and per rubric dimension, the mean absolute difference between the two
// sides' normalized human scores. Groups are sorted ascending by language
// pair label, so identical inputs always yield identical output.
//
// The caller is expected to have filtered the records already; same-language
// controls never survive FilterRecords, so they cannot dilute a group here.
// Returns ErrNoRecords for an empty input.
func DisparityByLanguage(catalog *Catalog, records []EvaluationRecord) ([]LanguageDisparity, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	groups := make(map[string][]EvaluationRecord)
	for _, rec := range records {
		groups[rec.LanguagePair] = append(groups[rec.LanguagePair], rec)
	}

	pairs := make([]string, 0, len(groups))
	for pair := range groups {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	result := make([]LanguageDisparity, 0, len(pairs))
	for _, pair := range pairs {
		group := groups[pair]
		n := float64(len(group))

		dims := make([]DimensionDisparity, 0, len(catalog.Dimensions()))
		for _, dim := range catalog.Dimensions() {
			var gapSum, sumA, sumB float64
			for _, rec := range group {
				a := rec.Human.SideA.NumericScore(catalog, dim.Key)
				b := rec.Human.SideB.NumericScore(catalog, dim.Key)
				gapSum += math.Abs(a - b)
				sumA += a
				sumB += b
			}
			dims = append(dims, DimensionDisparity{
				Key:        dim.Key,
				MeanAbsGap: gapSum / n,
				SideAMean:  sumA / n,
				SideBMean:  sumB / n,
			})
		}

		result = append(result, LanguageDisparity{
			LanguagePair: pair,
			RecordCount:  len(group),
			Dimensions:   dims,
		})
	}
	return result, nil
}

// FlagTally counts yes/no/unsure answers for one disparity criterion.
type FlagTally struct {
	Yes    int `json:"yes"`
	No     int `json:"no"`
	Unsure int `json:"unsure"`
}

// Total returns the number of flags counted.
func (t FlagTally) Total() int { return t.Yes + t.No + t.Unsure }

func (t *FlagTally) add(flag DisparityFlag) {
	switch flag {
	case FlagYes:
		t.Yes++
	case FlagNo:
		t.No++
	case FlagUnsure:
		t.Unsure++
	}
}

// CriterionTally holds the stacked-bar tallies for one disparity criterion.
type CriterionTally struct {
	// Key identifies the criterion.
	Key CriterionKey `json:"key"`

	// Question is the criterion's display phrasing, copied from the catalog.
	Question string `json:"question"`

	// Human tallies reviewer flags across all records.
	Human FlagTally `json:"human"`

	// Judge tallies automated flags across records with a completed judge
	// pass. Nil when no such records exist: the consuming view must render
	// an explicit no-data state, not a zero-height bar.
	Judge *FlagTally `json:"judge,omitempty"`
}

// CriterionTallies tallies yes/no/unsure flags per disparity criterion, for
// human reviewers across all records and for the automated judge across only
// the records whose judge pass completed. The result follows catalog order.
// Returns ErrNoRecords for an empty input.
func CriterionTallies(catalog *Catalog, records []EvaluationRecord) ([]CriterionTally, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	judged := 0
	for _, rec := range records {
		if _, ok := rec.JudgeScores(); ok {
			judged++
		}
	}

	tallies := make([]CriterionTally, 0, len(catalog.Criteria()))
	for _, crit := range catalog.Criteria() {
		tally := CriterionTally{Key: crit.Key, Question: crit.Question}
		if judged > 0 {
			tally.Judge = &FlagTally{}
		}
		for _, rec := range records {
			tally.Human.add(rec.Human.Disparity[crit.Key])
			if judge, ok := rec.JudgeScores(); ok {
				tally.Judge.add(judge.Disparity[crit.Key])
			}
		}
		tallies = append(tallies, tally)
	}
	return tallies, nil
}
