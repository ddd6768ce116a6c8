package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ahrav/go-parity/pkg/activity"
	"github.com/ahrav/go-parity/pkg/events"
)

// validate is the package-level validator instance used for input validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// EventTypeDashboardComputed is emitted after every snapshot materialization.
const EventTypeDashboardComputed = "analytics.dashboard_computed"

// eventSchemaVersion is the current payload schema version.
const eventSchemaVersion = "1.0.0"

// EventEmitter handles analytics event emission. It bridges snapshot
// results to the base activity event infrastructure; all emission is
// best-effort and failures are logged without affecting the computation.
type EventEmitter struct{ base activity.BaseActivities }

// NewEventEmitter creates an EventEmitter over the base activity
// infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// dashboardComputedPayload summarizes one snapshot for observability
// consumers; the full snapshot stays in the workflow result.
type dashboardComputedPayload struct {
	LanguagePair       string `json:"language_pair"`
	Model              string `json:"model"`
	TotalRecords       int    `json:"total_records"`
	FilteredRecords    int    `json:"filtered_records"`
	LanguageGroups     int    `json:"language_groups"`
	HasAgreement       bool   `json:"has_agreement"`
	HasModelComparison bool   `json:"has_model_comparison"`
	UnknownLabelCount  int    `json:"unknown_label_count"`
}

// EmitDashboardComputed emits the snapshot summary event. The idempotency
// key is derived from the workflow context and the client key, so activity
// retries redeliver the same event identity.
func (e *EventEmitter) EmitDashboardComputed(
	ctx context.Context,
	snapshot *DashboardSnapshot,
	wfCtx activity.WorkflowContext,
	clientIdemKey string,
) {
	unknownTotal := 0
	for _, count := range snapshot.UnknownLabels {
		unknownTotal += count
	}

	payload, err := json.Marshal(dashboardComputedPayload{
		LanguagePair:       snapshot.Selection.LanguagePair,
		Model:              snapshot.Selection.Model,
		TotalRecords:       snapshot.TotalRecords,
		FilteredRecords:    snapshot.FilteredRecords,
		LanguageGroups:     len(snapshot.Disparity),
		HasAgreement:       snapshot.Agreement != nil,
		HasModelComparison: snapshot.Models != nil,
		UnknownLabelCount:  unknownTotal,
	})
	if err != nil {
		activity.SafeLogError(ctx, "Failed to marshal DashboardComputed payload",
			"workflow_id", wfCtx.WorkflowID,
			"error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           EventTypeDashboardComputed,
		Source:         "analytics-activity",
		Version:        eventSchemaVersion,
		Timestamp:      time.Now(),
		IdempotencyKey: idempotencyKey(wfCtx, clientIdemKey),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        payload,
	}

	e.base.EmitEventSafe(ctx, envelope, "DashboardComputed")
}

// idempotencyKey derives a deterministic event identity from the workflow
// context and the client-supplied key.
func idempotencyKey(wfCtx activity.WorkflowContext, clientIdemKey string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%s:%s",
		wfCtx.WorkflowID, wfCtx.RunID, EventTypeDashboardComputed, clientIdemKey))
	return hex.EncodeToString(sum[:])
}
