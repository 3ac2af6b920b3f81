package statechart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopOperation(_ context.Context) error {
	return nil
}

func alwaysFalse(_ context.Context) bool {
	return false
}

// validBuilder declares a minimal well-formed chart:
// boot -> wait -> check -> {running, ended}.
func validBuilder() *Builder {
	b := NewBuilder("test_chart")
	b.Initial("boot").To("wait")
	b.AsyncWait("wait", noopOperation).Then("check")
	b.Choice("check").
		When(alwaysFalse, "ended").
		Otherwise("running")
	b.Simple("running").On("stop", "ended")
	b.Final("ended")

	return b
}

func TestBuild_ValidChart(t *testing.T) {
	t.Parallel()

	chart, err := validBuilder().Build()

	require.NoError(t, err)
	assert.Equal(t, "test_chart", chart.Name())
	assert.Equal(t, "boot", chart.Initial())
	assert.Len(t, chart.Nodes(), 5)
}

func TestBuild_ChartNameRequired(t *testing.T) {
	t.Parallel()

	b := NewBuilder("")
	b.Initial("boot").To("ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrChartNameRequired)
}

func TestBuild_NoInitialNode(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Simple("running")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrNoInitialNode)
}

func TestBuild_MultipleInitialNodes(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("ended")
	b.Initial("boot2").To("ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrMultipleInitialNodes)
}

func TestBuild_InitialTargetRequired(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrInitialTargetRequired)
}

func TestBuild_DuplicateNode(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("running")
	b.Simple("running")
	b.Simple("running")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrDuplicateNode)
}

func TestBuild_ChoiceFallbackRequired(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("check")
	b.Choice("check").When(alwaysFalse, "ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrChoiceFallbackRequired)
}

func TestBuild_ChoiceBranchAfterFallback(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("check")
	b.Choice("check").
		Otherwise("ended").
		When(alwaysFalse, "ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrChoiceBranchAfterFallback)
}

func TestBuild_ChoiceSecondFallback(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("check")
	b.Choice("check").
		Otherwise("ended").
		Otherwise("ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrChoiceFallbackDeclared)
}

func TestBuild_AsyncWaitOperationRequired(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("wait")
	b.AsyncWait("wait", nil).Then("ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrAsyncWaitOperationRequired)
}

func TestBuild_AsyncWaitTargetRequired(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("wait")
	b.AsyncWait("wait", noopOperation)
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrAsyncWaitTargetRequired)
}

func TestBuild_AsyncWaitMultipleTargets(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("wait")
	b.AsyncWait("wait", noopOperation).Then("ended").Then("ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrAsyncWaitTargetRequired)
}

func TestBuild_UnknownTarget(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("nowhere")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestBuild_NoReachableFinal(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("running")
	b.Simple("running")
	b.Final("ended") // declared but unreachable

	_, err := b.Build()

	require.ErrorIs(t, err, ErrNoFinalNode)
}

func TestBuild_DuplicateEventTransition(t *testing.T) {
	t.Parallel()

	b := NewBuilder("chart")
	b.Initial("boot").To("running")
	b.Simple("running").
		On("stop", "ended").
		On("stop", "ended")
	b.Final("ended")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrDuplicateEventTransition)
}

func TestBuild_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	b := NewBuilder("")
	b.Simple("running").On("stop", "nowhere")

	_, err := b.Build()

	require.ErrorIs(t, err, ErrChartNameRequired)
	require.ErrorIs(t, err, ErrNoInitialNode)
	require.ErrorIs(t, err, ErrUnknownTarget)
}
