package domain

// DimensionAverage holds the per-side mean score for one rubric dimension.
// A slice of these, in catalog order, backs radar and bar visualizations;
// the presentation layer relies on positional correspondence to the catalog.
type DimensionAverage struct {
	// Key identifies the dimension.
	Key DimensionKey `json:"key"`

	// Name is the dimension's display title, copied from the catalog so
	// consumers need no second lookup.
	Name string `json:"name"`

	// SideA is the mean normalized human score for the first response side.
	SideA float64 `json:"side_a"`

	// SideB is the mean normalized human score for the second response side.
	SideB float64 `json:"side_b"`
}

// DimensionAverages computes the arithmetic mean of normalized human scores
// per rubric dimension, separately for each side of the comparison. The
// result follows catalog order, not record order.
//
// Returns ErrNoRecords for an empty input: an empty set must surface as an
// insufficient-data state, never as a zero-filled chart.
func DimensionAverages(catalog *Catalog, records []EvaluationRecord) ([]DimensionAverage, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	averages := make([]DimensionAverage, 0, len(catalog.Dimensions()))
	n := float64(len(records))
	for _, dim := range catalog.Dimensions() {
		var sumA, sumB float64
		for _, rec := range records {
			sumA += rec.Human.SideA.NumericScore(catalog, dim.Key)
			sumB += rec.Human.SideB.NumericScore(catalog, dim.Key)
		}
		averages = append(averages, DimensionAverage{
			Key:   dim.Key,
			Name:  dim.Name,
			SideA: sumA / n,
			SideB: sumB / n,
		})
	}
	return averages, nil
}
