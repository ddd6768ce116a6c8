package domain

// NormalizeScore maps one raw stored rubric value to the canonical numeric
// scale. Stored numeric slider values pass through unchanged - callers are
// expected to have stored valid 1-5 values, so there is no clamping.
// Categorical labels resolve through the catalog's tier table; unrecognized
// labels resolve to the moderate tier, as does a value that was never stored.
//
// This is a total function: every input yields a number, never an error.
// The moderate-tier fallback deliberately masks malformed upstream labels
// so a single bad record cannot break a dashboard; use CountUnknownLabels
// to surface occurrences.
func NormalizeScore(catalog *Catalog, value ScoreValue) float64 {
	if value.IsLabel() {
		if tier, ok := catalog.LabelTier(value.Label); ok {
			return tier
		}
		return ScoreModerateTier
	}
	if value.Number == 0 {
		// Absent value. Indistinguishable from a deliberate moderate score,
		// but complete records never store one.
		return ScoreModerateTier
	}
	return value.Number
}

// NumericScore resolves the stored value for a dimension to the canonical
// numeric scale.
func (s RubricScores) NumericScore(catalog *Catalog, key DimensionKey) float64 {
	return NormalizeScore(catalog, s[key])
}

// CountUnknownLabels tallies, per dimension, categorical values on either
// side of the human scores that do not resolve through the catalog's tier
// table. A non-empty result means NormalizeScore silently coerced real data
// to the moderate tier; callers should log these rather than let the
// masking go unobserved.
func CountUnknownLabels(catalog *Catalog, records []EvaluationRecord) map[DimensionKey]int {
	counts := make(map[DimensionKey]int)
	for _, rec := range records {
		for _, scores := range []RubricScores{rec.Human.SideA, rec.Human.SideB} {
			for key, value := range scores {
				if !value.IsLabel() {
					continue
				}
				if _, ok := catalog.LabelTier(value.Label); !ok {
					counts[key]++
				}
			}
		}
	}
	return counts
}
