package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesSentinelByKind(t *testing.T) {
	err := WindowNotFound("id 42")
	assert.True(t, errors.Is(err, ErrWindowNotFound))
	assert.False(t, errors.Is(err, ErrInvalidBounds))
	assert.Equal(t, KindWindowNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "id 42")
}

func TestErrorf_UnwrapsWrappedCause(t *testing.T) {
	cause := errors.New("osascript exited 1")
	err := Errorf(KindFocusFailed, "focus window %d: %w", 7, cause)

	require.True(t, errors.Is(err, ErrFocusFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "focus window 7: osascript exited 1", err.Error())
}

func TestStepFailed_KeepsInnerKindReachable(t *testing.T) {
	inner := PayloadTooLarge(400_000, 300_000)
	err := StepFailed(2, "screen_capture", inner)

	assert.Equal(t, KindStepFailed, KindOf(err))
	assert.True(t, errors.Is(err, ErrStepFailed))
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	assert.Contains(t, err.Error(), "400000")
	assert.Contains(t, err.Error(), "300000")
}

func TestKindOf_UnclassifiedIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, KindInvalidBounds, KindOf(fmt.Errorf("wrap: %w", InvalidBounds("crop", Rect{0, 0, -1, 5}, nil))))
}

func TestInvalidBounds_IncludesNumbers(t *testing.T) {
	src := Size{Width: 100, Height: 50}
	err := InvalidBounds("extraction", Rect{X: 90, Y: 0, Width: 20, Height: 10}, &src)
	assert.Contains(t, err.Error(), "x=90 y=0 w=20 h=10")
	assert.Contains(t, err.Error(), "100x50")
}
