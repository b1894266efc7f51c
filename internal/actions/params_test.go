package actions

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"int", 42, 42, true},
		{"int64", int64(-3), -3, true},
		{"float rounds up", 99.7, 100, true},
		{"float rounds down", 99.2, 99, true},
		{"negative float", -0.6, -1, true},
		{"half rounds away from zero", 10.5, 11, true},
		{"float32", float32(4.6), 5, true},
		{"json integer", json.Number("12"), 12, true},
		{"json fraction", json.Number("12.5"), 13, true},
		{"string", " 7 ", 7, true},
		{"fractional string", "3.8", 4, true},
		{"garbage", "abc", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMouseClick_FractionalCoordinatesRound(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, KindMouseClick, Params{"x": 99.7, "y": 50.4})
	assert.True(t, res.Success, res.Error)
	move, ok := h.input.Last("move")
	assert.True(t, ok)
	assert.Equal(t, 100, move.X)
	assert.Equal(t, 50, move.Y)
}
