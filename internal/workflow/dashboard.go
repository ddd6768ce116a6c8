// Package workflow orchestrates dashboard snapshot materialization using
// Temporal workflows. The aggregation itself is pure and deterministic; the
// workflow adds durable execution around loading the corpus and computing
// the snapshot, so a transient store failure never loses a refresh.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-parity/internal/analytics"
)

// DashboardWorkflow materializes one dashboard snapshot for a filter
// selection. All workflow code must use workflow-safe APIs only; everything
// non-deterministic happens inside the ComputeDashboard activity.
func DashboardWorkflow(
	ctx workflow.Context,
	input analytics.SnapshotInput,
) (*analytics.DashboardSnapshot, error) {
	// Version gate enables safe evolution and backward compatibility.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "dashboard.v", workflow.DefaultVersion, currentVersion)

	// Validate input early to fail fast before scheduling any activity.
	if err := input.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid snapshot input",
			"Validation",
			err,
		)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var snapshot analytics.DashboardSnapshot
	err := workflow.ExecuteActivity(ctx, "ComputeDashboard", input).Get(ctx, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
