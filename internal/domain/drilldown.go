package domain

import (
	"fmt"
	"math"
)

// FlagSource names whose disparity flags a selector inspects.
type FlagSource string

const (
	// SourceHuman selects the reviewer's flags.
	SourceHuman FlagSource = "human"

	// SourceJudge selects the automated judge's flags.
	SourceJudge FlagSource = "judge"
)

// SelectorKind distinguishes the two drilldown selector shapes.
type SelectorKind string

const (
	// SelectDimensionGap selects records whose per-record score gap on one
	// dimension meets a threshold. Backs heatmap cell drilldown.
	SelectDimensionGap SelectorKind = "dimension_gap"

	// SelectCriterionFlag selects records whose stored flag for one
	// criterion equals a category. Backs stacked-bar segment drilldown.
	SelectCriterionFlag SelectorKind = "criterion_flag"
)

// DrilldownSelector describes one previously rendered aggregate cell or bar
// segment. It carries the exact predicate parameters that built the
// aggregate, so re-applying it to the currently filtered record set is
// guaranteed to reproduce the records behind the chart element, even as the
// filter selection changes between renders. Nothing is cached.
type DrilldownSelector struct {
	// Kind selects which predicate shape applies.
	Kind SelectorKind `json:"kind" validate:"required,oneof=dimension_gap criterion_flag"`

	// Dimension is the rubric dimension for SelectDimensionGap.
	Dimension DimensionKey `json:"dimension,omitempty"`

	// MinGap is the minimum |sideA - sideB| normalized score gap, inclusive,
	// for SelectDimensionGap.
	MinGap float64 `json:"min_gap,omitempty" validate:"min=0,max=4"`

	// Criterion is the disparity criterion for SelectCriterionFlag.
	Criterion CriterionKey `json:"criterion,omitempty"`

	// Flag is the clicked category for SelectCriterionFlag.
	Flag DisparityFlag `json:"flag,omitempty" validate:"omitempty,oneof=yes no unsure"`

	// Source is whose flags SelectCriterionFlag inspects. Defaults to human.
	Source FlagSource `json:"source,omitempty" validate:"omitempty,oneof=human judge"`
}

// Validate checks the selector against the catalog: the referenced dimension
// or criterion must exist for the predicate to be reproducible.
func (s DrilldownSelector) Validate(catalog *Catalog) error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	switch s.Kind {
	case SelectDimensionGap:
		if _, ok := catalog.Dimension(s.Dimension); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDimension, s.Dimension)
		}
	case SelectCriterionFlag:
		if _, ok := catalog.Criterion(s.Criterion); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCriterion, s.Criterion)
		}
	}
	return nil
}

// Matches applies the selector's predicate to a single record. For judge
// flag selectors, records without a completed judge pass never match; they
// were never counted in the automated tally either.
func (s DrilldownSelector) Matches(catalog *Catalog, rec EvaluationRecord) bool {
	switch s.Kind {
	case SelectDimensionGap:
		a := rec.Human.SideA.NumericScore(catalog, s.Dimension)
		b := rec.Human.SideB.NumericScore(catalog, s.Dimension)
		return math.Abs(a-b) >= s.MinGap
	case SelectCriterionFlag:
		if s.Source == SourceJudge {
			judge, ok := rec.JudgeScores()
			if !ok {
				return false
			}
			return judge.Disparity[s.Criterion] == s.Flag
		}
		return rec.Human.Disparity[s.Criterion] == s.Flag
	default:
		return false
	}
}

// Drilldown returns the exact subset of the currently filtered record set
// that produced the aggregate the selector describes, preserving record
// order. The input must be the same filtered set the aggregate was computed
// over - never the unfiltered superset.
func Drilldown(catalog *Catalog, records []EvaluationRecord, sel DrilldownSelector) ([]EvaluationRecord, error) {
	if err := sel.Validate(catalog); err != nil {
		return nil, err
	}
	matched := make([]EvaluationRecord, 0, len(records))
	for _, rec := range records {
		if sel.Matches(catalog, rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}
