// Package analytics implements the Temporal activity that materializes
// dashboard snapshots from the evaluation record corpus. It wires the pure
// aggregation functions in internal/domain to a record source, emits
// observability events, and surfaces the recovered conditions the domain
// layer deliberately keeps silent, such as unknown categorical labels.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-parity/internal/domain"
	"github.com/ahrav/go-parity/pkg/activity"
)

// RecordSource supplies the evaluation record corpus for aggregation.
// The persistence layer implements this; tests supply fixtures.
type RecordSource interface {
	// List returns every evaluation record, newest first.
	List(ctx context.Context) ([]domain.EvaluationRecord, error)
}

// SnapshotInput requests one dashboard snapshot computation.
type SnapshotInput struct {
	// Selection is the filter state to compute the snapshot under.
	Selection domain.FilterSelection `json:"selection" validate:"required"`

	// ClientIdempotencyKey makes emitted events deterministic across
	// activity retries.
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks the input's operation contract.
func (s *SnapshotInput) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	return s.Selection.Validate()
}

// DashboardSnapshot is one fully materialized set of dashboard aggregates
// for a filter selection. Sections defined as absent rather than zero -
// agreement without judge data, comparison without two models - are nil
// pointers so consumers render explicit no-data states.
type DashboardSnapshot struct {
	// Selection is the filter state the snapshot was computed under.
	Selection domain.FilterSelection `json:"selection"`

	// ComputedAt records when the snapshot was materialized.
	ComputedAt time.Time `json:"computed_at"`

	// TotalRecords is the corpus size before filtering.
	TotalRecords int `json:"total_records"`

	// FilteredRecords is the number of records the aggregates cover. Zero
	// means every aggregate section below is nil and the dashboard shows an
	// insufficient-data state.
	FilteredRecords int `json:"filtered_records"`

	// Dimensions holds per-dimension side averages in catalog order.
	Dimensions []domain.DimensionAverage `json:"dimensions,omitempty"`

	// Disparity holds the per-language heatmap rows, sorted by label.
	Disparity []domain.LanguageDisparity `json:"disparity,omitempty"`

	// Criteria holds the per-criterion stacked-bar tallies in catalog order.
	Criteria []domain.CriterionTally `json:"criteria,omitempty"`

	// Agreement holds human-vs-judge rates. Nil when no record in the
	// filtered set carries a completed judge pass.
	Agreement *domain.AgreementReport `json:"agreement,omitempty"`

	// Models holds the cross-model comparison. Nil when the filtered set
	// spans fewer than two distinct models.
	Models *domain.ModelComparison `json:"models,omitempty"`

	// UnknownLabels counts, per dimension, stored categorical values that
	// fell back to the moderate tier during normalization.
	UnknownLabels map[domain.DimensionKey]int `json:"unknown_labels,omitempty"`
}

// Activities handles analytics-specific Temporal activities.
type Activities struct {
	activity.BaseActivities
	catalog *domain.Catalog
	source  RecordSource
	events  *EventEmitter
}

// NewActivities creates analytics activities with the provided dependencies.
// The catalog must be the process-wide immutable instance; the source is the
// persistence collaborator the corpus is read from.
func NewActivities(base activity.BaseActivities, catalog *domain.Catalog, source RecordSource) *Activities {
	return &Activities{
		BaseActivities: base,
		catalog:        catalog,
		source:         source,
		events:         NewEventEmitter(base),
	}
}

// ComputeDashboard materializes every dashboard aggregate for one filter
// selection. The computation itself is a pure function of the record corpus
// and the selection; this activity adds loading, logging, and event emission
// around it.
//
// Absent-data conditions are values, not failures: an empty filtered set
// yields a snapshot with nil sections, missing judge data yields a nil
// agreement section, and a single-model set yields a nil comparison. Only
// invalid input and record-source failures error.
func (a *Activities) ComputeDashboard(
	ctx context.Context,
	input SnapshotInput,
) (*DashboardSnapshot, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("ComputeDashboard", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ComputeDashboard activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"language_pair", input.Selection.LanguagePair,
		"model", input.Selection.Model)

	records, err := a.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list evaluation records: %w", err)
	}

	filtered := domain.FilterRecords(records, input.Selection)
	snapshot := &DashboardSnapshot{
		Selection:       input.Selection,
		ComputedAt:      time.Now(),
		TotalRecords:    len(records),
		FilteredRecords: len(filtered),
	}

	if len(filtered) == 0 {
		activity.SafeLog(ctx, "No records match selection, snapshot has no aggregates",
			"total_records", len(records))
		a.events.EmitDashboardComputed(ctx, snapshot, wfCtx, input.ClientIdempotencyKey)
		return snapshot, nil
	}

	if snapshot.Dimensions, err = domain.DimensionAverages(a.catalog, filtered); err != nil {
		return nil, nonRetryable("ComputeDashboard", err, "dimension aggregation failed")
	}
	if snapshot.Disparity, err = domain.DisparityByLanguage(a.catalog, filtered); err != nil {
		return nil, nonRetryable("ComputeDashboard", err, "disparity aggregation failed")
	}
	if snapshot.Criteria, err = domain.CriterionTallies(a.catalog, filtered); err != nil {
		return nil, nonRetryable("ComputeDashboard", err, "criterion tally failed")
	}

	snapshot.Agreement, err = domain.ComputeAgreement(a.catalog, filtered)
	if err != nil {
		if !errors.Is(err, domain.ErrNoJudgeData) {
			return nil, nonRetryable("ComputeDashboard", err, "agreement computation failed")
		}
		activity.SafeLog(ctx, "No completed judge passes in selection, agreement absent")
	}

	snapshot.Models, err = domain.CompareModels(a.catalog, filtered)
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientModels) {
			return nil, nonRetryable("ComputeDashboard", err, "model comparison failed")
		}
		activity.SafeLog(ctx, "Fewer than two models in selection, comparison absent")
	}

	if unknown := domain.CountUnknownLabels(a.catalog, filtered); len(unknown) > 0 {
		snapshot.UnknownLabels = unknown
		// Normalization masked these as moderate-tier scores; surface the
		// occurrences so the upstream data problem is visible.
		for key, count := range unknown {
			activity.SafeLogWarn(ctx, "Unknown categorical labels normalized to moderate tier",
				"dimension", string(key),
				"occurrences", count)
		}
	}

	a.events.EmitDashboardComputed(ctx, snapshot, wfCtx, input.ClientIdempotencyKey)

	activity.SafeLog(ctx, "ComputeDashboard completed",
		"filtered_records", snapshot.FilteredRecords,
		"language_groups", len(snapshot.Disparity),
		"has_agreement", snapshot.Agreement != nil,
		"has_model_comparison", snapshot.Models != nil)

	return snapshot, nil
}

// nonRetryable wraps errors as Temporal non-retryable application errors.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
