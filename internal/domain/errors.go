package domain

import "errors"

// Analytics errors returned by aggregation operations. All of these are
// local, recoverable conditions: callers translate them into explicit
// "insufficient data" states rather than failing the surrounding process.
var (
	// ErrNoRecords indicates an aggregator was invoked over zero records.
	// Aggregators refuse to compute zero-valued charts; callers must check
	// record counts and render an insufficient-data state instead.
	ErrNoRecords = errors.New("no evaluation records to aggregate")

	// ErrInsufficientModels indicates the filtered set spans fewer than two
	// distinct model identifiers, so a model comparison would degenerate
	// into a single-entry table.
	ErrInsufficientModels = errors.New("model comparison requires at least two distinct models")

	// ErrNoJudgeData indicates that zero records carry a completed LLM-judge
	// pass, so human-vs-judge metrics are undefined rather than zero.
	ErrNoJudgeData = errors.New("no records with a completed judge pass")

	// ErrUnknownDimension indicates a drilldown selector referenced a
	// dimension key absent from the catalog.
	ErrUnknownDimension = errors.New("unknown rubric dimension")

	// ErrUnknownCriterion indicates a drilldown selector referenced a
	// criterion key absent from the catalog.
	ErrUnknownCriterion = errors.New("unknown disparity criterion")

	// ErrIncompleteScores indicates a record's human scores are missing one
	// or more catalog dimensions or criteria. Such records must be held back
	// by the evaluation workflow until complete.
	ErrIncompleteScores = errors.New("human scores are not fully populated")
)
