package domain

import "sort"

// ModelDimensionScore is one model's quality on one rubric dimension: the
// mean over the model's records of the two sides' average normalized score.
type ModelDimensionScore struct {
	// Key identifies the dimension.
	Key DimensionKey `json:"key"`

	// Mean is the single combined quality number for the dimension.
	Mean float64 `json:"mean"`
}

// ModelCriterionRate is one model's disparity rate on one criterion: the
// percentage of the model's records whose human flag is yes.
type ModelCriterionRate struct {
	// Key identifies the criterion.
	Key CriterionKey `json:"key"`

	// YesPercent is the yes-rate in [0,100].
	YesPercent float64 `json:"yes_percent"`
}

// SidePerformance is one model's mean generation performance for one
// response side.
type SidePerformance struct {
	// MeanGenerationSeconds is the mean elapsed generation time over records
	// that captured a timing for this side. Nil when no record did: no
	// timing data is distinct from instantaneous generation.
	MeanGenerationSeconds *float64 `json:"mean_generation_seconds,omitempty"`

	// MeanAnswerWords is the mean response word count over all records.
	MeanAnswerWords float64 `json:"mean_answer_words"`

	// MeanWordsPerSecond is the derived rate, mean words over mean seconds.
	// Nil whenever MeanGenerationSeconds is.
	MeanWordsPerSecond *float64 `json:"mean_words_per_second,omitempty"`
}

// ModelSummary aggregates one model's records: combined per-dimension
// quality, per-criterion human disparity rates, and per-side performance.
type ModelSummary struct {
	// Model is the model identifier keying this summary.
	Model string `json:"model"`

	// RecordCount is the number of records in the group.
	RecordCount int `json:"record_count"`

	// Dimensions holds per-dimension quality in catalog order.
	Dimensions []ModelDimensionScore `json:"dimensions"`

	// DisparityRates holds per-criterion yes-rates in catalog order.
	DisparityRates []ModelCriterionRate `json:"disparity_rates"`

	// SideA holds performance for the first response side.
	SideA SidePerformance `json:"side_a"`

	// SideB holds performance for the second response side.
	SideB SidePerformance `json:"side_b"`
}

// ModelComparison is the cross-model comparison table. Summaries are keyed
// by model identifier for chart lookup; Models lists the identifiers in
// lexicographic order so iteration stays deterministic.
type ModelComparison struct {
	// Models lists the compared model identifiers, sorted ascending.
	Models []string `json:"models"`

	// Summaries maps each model identifier to its aggregate summary.
	Summaries map[string]ModelSummary `json:"summaries"`
}

// CompareModels groups records by model identifier and recomputes dimension,
// disparity, and performance aggregates per group. A comparison is only
// meaningful across at least two distinct models; with fewer the result is
// absent, signalled by ErrInsufficientModels, never a one-entry table.
// Returns ErrNoRecords for an empty input.
func CompareModels(catalog *Catalog, records []EvaluationRecord) (*ModelComparison, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	groups := make(map[string][]EvaluationRecord)
	for _, rec := range records {
		groups[rec.Model] = append(groups[rec.Model], rec)
	}
	if len(groups) < 2 {
		return nil, ErrInsufficientModels
	}

	models := make([]string, 0, len(groups))
	for model := range groups {
		models = append(models, model)
	}
	sort.Strings(models)

	comparison := &ModelComparison{
		Models:    models,
		Summaries: make(map[string]ModelSummary, len(models)),
	}
	for _, model := range models {
		comparison.Summaries[model] = summarizeModel(catalog, model, groups[model])
	}
	return comparison, nil
}

func summarizeModel(catalog *Catalog, model string, records []EvaluationRecord) ModelSummary {
	n := float64(len(records))

	summary := ModelSummary{
		Model:          model,
		RecordCount:    len(records),
		Dimensions:     make([]ModelDimensionScore, 0, len(catalog.Dimensions())),
		DisparityRates: make([]ModelCriterionRate, 0, len(catalog.Criteria())),
	}

	for _, dim := range catalog.Dimensions() {
		var sum float64
		for _, rec := range records {
			a := rec.Human.SideA.NumericScore(catalog, dim.Key)
			b := rec.Human.SideB.NumericScore(catalog, dim.Key)
			sum += (a + b) / 2
		}
		summary.Dimensions = append(summary.Dimensions, ModelDimensionScore{
			Key:  dim.Key,
			Mean: sum / n,
		})
	}

	for _, crit := range catalog.Criteria() {
		yes := 0
		for _, rec := range records {
			if rec.Human.Disparity[crit.Key] == FlagYes {
				yes++
			}
		}
		summary.DisparityRates = append(summary.DisparityRates, ModelCriterionRate{
			Key:        crit.Key,
			YesPercent: float64(yes) / n * 100,
		})
	}

	summary.SideA = summarizePerformance(records, func(r EvaluationRecord) GenerationMetrics { return r.SideA })
	summary.SideB = summarizePerformance(records, func(r EvaluationRecord) GenerationMetrics { return r.SideB })
	return summary
}

// summarizePerformance computes mean generation time, mean answer word
// count, and the derived words-per-second rate for one side of a model
// group. Records without a captured timing contribute to the word-count
// mean but not to the timing mean or the rate.
func summarizePerformance(records []EvaluationRecord, side func(EvaluationRecord) GenerationMetrics) SidePerformance {
	var perf SidePerformance
	var wordSum float64
	var timeSum float64
	timed := 0

	for _, rec := range records {
		metrics := side(rec)
		wordSum += float64(metrics.AnswerWords)
		if metrics.GenerationSeconds != nil {
			timeSum += *metrics.GenerationSeconds
			timed++
		}
	}

	perf.MeanAnswerWords = wordSum / float64(len(records))
	if timed > 0 {
		meanSeconds := timeSum / float64(timed)
		perf.MeanGenerationSeconds = &meanSeconds
		if meanSeconds > 0 {
			rate := perf.MeanAnswerWords / meanSeconds
			perf.MeanWordsPerSecond = &rate
		}
	}
	return perf
}
