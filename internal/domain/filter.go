package domain

// FilterSelection is the two-facet filter state held by the presentation
// layer and passed verbatim into every aggregation call. Each facet is either
// a concrete value present in the data or the FacetAll wildcard.
type FilterSelection struct {
	// LanguagePair narrows records to one language comparison, or FacetAll.
	LanguagePair string `json:"language_pair" validate:"required"`

	// Model narrows records to one model identifier, or FacetAll.
	Model string `json:"model" validate:"required"`
}

// AllRecords is the selection that matches everything except controls.
func AllRecords() FilterSelection {
	return FilterSelection{LanguagePair: FacetAll, Model: FacetAll}
}

// Validate checks the selection's structural constraints.
func (s FilterSelection) Validate() error { return validate.Struct(s) }

// FilterRecords narrows a record collection by the selection. Same-language
// control records are dropped unconditionally before either facet applies,
// so controls never reach a disparity view even under the FacetAll wildcard.
// The relative order of surviving records is preserved, which makes the
// filter stable and idempotent.
func FilterRecords(records []EvaluationRecord, sel FilterSelection) []EvaluationRecord {
	filtered := make([]EvaluationRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsControl() {
			continue
		}
		if sel.LanguagePair != FacetAll && rec.LanguagePair != sel.LanguagePair {
			continue
		}
		if sel.Model != FacetAll && rec.Model != sel.Model {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
