package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Equal(t, zap.L(), FromContext(context.Background()))
}

func TestWith_AddsFields(t *testing.T) {
	ctx, logs := TestContext()
	ctx = With(ctx, zap.String("tool", "mouse_click"))

	L(ctx).Info("clicked")

	entries := logs.FilterMessage("clicked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "mouse_click", entries[0].ContextMap()["tool"])
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	_, err := Init(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestInit_InstallsGlobal(t *testing.T) {
	orig := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(orig) })

	l, err := Init(Options{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, l, zap.L())
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}
