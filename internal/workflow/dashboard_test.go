package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkactivity "go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/ahrav/go-parity/internal/analytics"
	"github.com/ahrav/go-parity/internal/domain"
)

func validSnapshotInput() analytics.SnapshotInput {
	return analytics.SnapshotInput{
		Selection: domain.FilterSelection{
			LanguagePair: domain.FacetAll,
			Model:        domain.FacetAll,
		},
		ClientIdempotencyKey: "client-key-1",
	}
}

// computeDashboardStub stands in for the real activity so the environment
// knows the activity's signature; every test mocks it out.
func computeDashboardStub(context.Context, analytics.SnapshotInput) (*analytics.DashboardSnapshot, error) {
	return nil, errors.New("not mocked")
}

func newDashboardEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DashboardWorkflow)
	env.RegisterActivityWithOptions(computeDashboardStub, sdkactivity.RegisterOptions{
		Name: "ComputeDashboard",
	})
	return env
}

func TestDashboardWorkflow(t *testing.T) {
	t.Run("returns the activity snapshot", func(t *testing.T) {
		env := newDashboardEnv(t)
		defer env.AssertExpectations(t)

		input := validSnapshotInput()
		want := &analytics.DashboardSnapshot{
			Selection:       input.Selection,
			ComputedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			TotalRecords:    12,
			FilteredRecords: 9,
		}
		env.OnActivity("ComputeDashboard", mock.Anything, input).Return(want, nil).Once()

		env.ExecuteWorkflow(DashboardWorkflow, input)

		require.True(t, env.IsWorkflowCompleted())
		require.NoError(t, env.GetWorkflowError())

		var got analytics.DashboardSnapshot
		require.NoError(t, env.GetWorkflowResult(&got))
		assert.Equal(t, want.Selection, got.Selection)
		assert.Equal(t, want.TotalRecords, got.TotalRecords)
		assert.Equal(t, want.FilteredRecords, got.FilteredRecords)
	})

	t.Run("invalid input fails before scheduling the activity", func(t *testing.T) {
		env := newDashboardEnv(t)
		defer env.AssertExpectations(t)

		env.ExecuteWorkflow(DashboardWorkflow, analytics.SnapshotInput{})

		require.True(t, env.IsWorkflowCompleted())
		err := env.GetWorkflowError()
		require.Error(t, err)

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Validation", appErr.Type())
		assert.Contains(t, appErr.Error(), "invalid snapshot input")
		assert.True(t, appErr.NonRetryable())
	})

	t.Run("activity failure propagates", func(t *testing.T) {
		env := newDashboardEnv(t)
		defer env.AssertExpectations(t)

		input := validSnapshotInput()
		env.OnActivity("ComputeDashboard", mock.Anything, input).
			Return(nil, temporal.NewNonRetryableApplicationError("record source unavailable", "Store", nil))

		env.ExecuteWorkflow(DashboardWorkflow, input)

		require.True(t, env.IsWorkflowCompleted())
		err := env.GetWorkflowError()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record source unavailable")
	})
}

// TestDashboardWorkflowDeterminism replays the workflow several times with a
// fixed mock to confirm identical behavior across executions.
func TestDashboardWorkflowDeterminism(t *testing.T) {
	input := validSnapshotInput()
	want := &analytics.DashboardSnapshot{Selection: input.Selection, TotalRecords: 3, FilteredRecords: 3}

	for i := 0; i < 3; i++ {
		env := newDashboardEnv(t)

		env.OnActivity("ComputeDashboard", mock.Anything, input).Return(want, nil).Once()
		env.ExecuteWorkflow(DashboardWorkflow, input)

		require.True(t, env.IsWorkflowCompleted(), "attempt %d", i+1)
		require.NoError(t, env.GetWorkflowError(), "attempt %d", i+1)

		var got analytics.DashboardSnapshot
		require.NoError(t, env.GetWorkflowResult(&got))
		assert.Equal(t, want.FilteredRecords, got.FilteredRecords, "attempt %d", i+1)

		env.AssertExpectations(t)
	}
}
