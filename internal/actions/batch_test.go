package actions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
)

func threeSteps() []any {
	return []any{
		map[string]any{"kind": KindKeyboardType, "params": map[string]any{"text": "one"}},
		map[string]any{"kind": "teleport", "params": map[string]any{}},
		map[string]any{"kind": KindKeyboardType, "params": map[string]any{"text": "three"}},
	}
}

func TestBatch_StopsOnFirstFailure(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, KindBatch, Params{"actions": threeSteps()})
	require.NotNil(t, res.Batch)
	assert.False(t, res.Success)
	assert.False(t, res.Batch.OverallSuccess)
	require.Len(t, res.Batch.Results, 2)
	assert.True(t, res.Batch.Results[0].Success)
	assert.False(t, res.Batch.Results[1].Success)
	assert.Equal(t, 2, res.Batch.Results[1].Index)
	require.Len(t, res.Batch.Errors, 1)
	assert.Contains(t, res.Batch.Errors[0], "step 2 (teleport) failed")
	assert.Equal(t, model.KindStepFailed, res.ErrorKind)
	assert.Equal(t, []string{"type"}, h.input.Ops())
}

func TestBatch_ContinueOnError(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, KindBatch, Params{"actions": threeSteps(), "continueOnError": true})
	require.NotNil(t, res.Batch)
	assert.False(t, res.Batch.OverallSuccess)
	require.Len(t, res.Batch.Results, 3)
	assert.True(t, res.Batch.Results[0].Success)
	assert.False(t, res.Batch.Results[1].Success)
	assert.True(t, res.Batch.Results[2].Success)
	assert.Len(t, res.Batch.Errors, 1)
	assert.Equal(t, []string{"type", "type"}, h.input.Ops())
}

func TestBatch_AllSucceed(t *testing.T) {
	h := newHarness(t)
	steps := []Step{
		{Kind: KindKeyboardPress, Params: Params{"key": "a"}},
		{Kind: KindPointerPosition},
	}

	ctx, _ := logger.TestContext()
	br, err := h.orch.RunBatch(ctx, steps, false)
	require.NoError(t, err)
	assert.True(t, br.OverallSuccess)
	assert.Len(t, br.Results, 2)
	assert.Empty(t, br.Errors)
}

func TestBatch_MissingAndNestedKinds(t *testing.T) {
	h := newHarness(t)
	actions := []any{
		map[string]any{"params": map[string]any{"text": "x"}},
		map[string]any{"kind": KindBatch, "params": map[string]any{"actions": []any{}}},
		"not an object",
		map[string]any{"kind": KindKeyboardType, "delayAfterMs": 70000, "params": map[string]any{"text": "x"}},
	}

	res := h.run(t, KindBatch, Params{"actions": actions, "continueOnError": true})
	require.NotNil(t, res.Batch)
	require.Len(t, res.Batch.Results, 4)
	for _, r := range res.Batch.Results {
		assert.False(t, r.Success, "step %d should fail", r.Index)
	}
	assert.Len(t, res.Batch.Errors, 4)
	assert.Contains(t, res.Batch.Errors[0], "missing kind")
	assert.Contains(t, res.Batch.Results[1].Error, "cannot be nested")
	assert.Empty(t, h.input.Ops())
}

func TestBatch_DelayAfterIsAwaited(t *testing.T) {
	h := newHarness(t)
	actions := []any{
		map[string]any{"kind": KindKeyboardPress, "params": map[string]any{"key": "a"}, "delayAfterMs": 40},
		map[string]any{"kind": KindKeyboardPress, "params": map[string]any{"key": "b"}},
	}

	start := time.Now()
	res := h.run(t, KindBatch, Params{"actions": actions})
	require.True(t, res.Success, res.Error)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestBatch_CaptureStepKeepsSummaryOnly(t *testing.T) {
	h := newHarness(t)
	actions := []any{
		map[string]any{"kind": KindScreenCapture},
		map[string]any{"kind": KindMouseClick, "params": map[string]any{"x": 576, "y": 360}},
	}

	res := h.run(t, KindBatch, Params{"actions": actions})
	require.True(t, res.Success, res.Error)
	assert.Nil(t, res.Image)
	assert.Contains(t, res.Batch.Results[0].Data["summary"], "Captured screen")

	move, ok := h.input.Last("move")
	require.True(t, ok)
	assert.Equal(t, 720, move.X)
	assert.Equal(t, 450, move.Y)
}

func TestBatch_RequiresActions(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, model.KindInvalidParams, h.run(t, KindBatch, Params{}).ErrorKind)
	assert.Equal(t, model.KindInvalidParams, h.run(t, KindBatch, Params{"actions": []any{}}).ErrorKind)
	assert.Equal(t, model.KindInvalidParams, h.run(t, KindBatch, Params{"actions": "click"}).ErrorKind)
}
