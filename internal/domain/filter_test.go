package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRecords(t *testing.T) {
	records := []EvaluationRecord{
		newTestRecord("rec-1", "English - Spanish", "gpt-4o"),
		newTestRecord("rec-2", SameLanguageControl, "gpt-4o"),
		newTestRecord("rec-3", "English - Hindi", "claude-sonnet"),
		newTestRecord("rec-4", "English - Spanish", "claude-sonnet"),
	}

	tests := []struct {
		name        string
		selection   FilterSelection
		expectedIDs []string
	}{
		{
			name:        "wildcard both facets drops only controls",
			selection:   AllRecords(),
			expectedIDs: []string{"rec-1", "rec-3", "rec-4"},
		},
		{
			name:        "language pair facet",
			selection:   FilterSelection{LanguagePair: "English - Spanish", Model: FacetAll},
			expectedIDs: []string{"rec-1", "rec-4"},
		},
		{
			name:        "model facet",
			selection:   FilterSelection{LanguagePair: FacetAll, Model: "claude-sonnet"},
			expectedIDs: []string{"rec-3", "rec-4"},
		},
		{
			name:        "both facets",
			selection:   FilterSelection{LanguagePair: "English - Spanish", Model: "claude-sonnet"},
			expectedIDs: []string{"rec-4"},
		},
		{
			name:        "no matches is a valid empty result",
			selection:   FilterSelection{LanguagePair: "English - Japanese", Model: FacetAll},
			expectedIDs: []string{},
		},
		{
			name:        "control pair is dropped even when selected explicitly",
			selection:   FilterSelection{LanguagePair: SameLanguageControl, Model: FacetAll},
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterRecords(records, tt.selection)

			ids := make([]string, 0, len(filtered))
			for _, rec := range filtered {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids, "surviving records must keep input order")
		})
	}
}

func TestFilterRecords_Idempotent(t *testing.T) {
	records := []EvaluationRecord{
		newTestRecord("rec-1", "English - Spanish", "gpt-4o"),
		newTestRecord("rec-2", SameLanguageControl, "gpt-4o"),
		newTestRecord("rec-3", "English - Spanish", "claude-sonnet"),
	}
	sel := FilterSelection{LanguagePair: "English - Spanish", Model: FacetAll}

	once := FilterRecords(records, sel)
	twice := FilterRecords(once, sel)

	assert.Equal(t, once, twice, "re-filtering with identical parameters must be a no-op")
}

func TestFilterRecords_DoesNotMutateInput(t *testing.T) {
	records := []EvaluationRecord{
		newTestRecord("rec-1", SameLanguageControl, "gpt-4o"),
		newTestRecord("rec-2", "English - Spanish", "gpt-4o"),
	}

	_ = FilterRecords(records, AllRecords())

	require.Len(t, records, 2)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "rec-2", records[1].ID)
}

func TestFilterSelection_Validate(t *testing.T) {
	assert.NoError(t, AllRecords().Validate())
	assert.Error(t, FilterSelection{}.Validate(), "empty facets are invalid, use FacetAll")
}
