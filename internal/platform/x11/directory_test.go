package x11

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

func TestCommandStrategy_MissingTool(t *testing.T) {
	focus := commandStrategy("desktop-pilot-no-such-tool", "--activate", "%d")
	err := focus(context.Background(), model.WindowRecord{ID: 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}

func TestButtonCode(t *testing.T) {
	assert.Equal(t, byte(1), buttonCode(platform.MouseLeft))
	assert.Equal(t, byte(3), buttonCode(platform.MouseRight))
	assert.Equal(t, byte(2), buttonCode(platform.MouseMiddle))
}
