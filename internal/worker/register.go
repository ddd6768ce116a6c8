// Package worker exposes helpers to register workflows/activities with a
// Temporal worker and to initialize their dependencies.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-parity/internal/analytics"
	"github.com/ahrav/go-parity/internal/domain"
	"github.com/ahrav/go-parity/internal/workflow"
	"github.com/ahrav/go-parity/pkg/activity"
	"github.com/ahrav/go-parity/pkg/events"
)

// RegisterAll registers all workflows and activities with the Temporal
// worker. Must be called once during worker initialization before starting
// the worker; registration is not thread-safe.
func RegisterAll(w sdkworker.Worker, source analytics.RecordSource, sink events.EventSink) {
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	base := activity.NewBaseActivities(sink)

	analyticsActivities := analytics.NewActivities(base, domain.DefaultCatalog(), source)

	w.RegisterWorkflow(workflow.DashboardWorkflow)
	w.RegisterActivity(analyticsActivities.ComputeDashboard)
}
