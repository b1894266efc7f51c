// Package fakes provides in-memory platform capabilities for tests.
package fakes

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Grabber returns a solid image of Size.
type Grabber struct {
	Size  model.Size
	Err   error
	Calls int
}

func (g *Grabber) Grab(ctx context.Context) (image.Image, error) {
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	img := image.NewRGBA(image.Rect(0, 0, g.Size.Width, g.Size.Height))
	for y := 0; y < g.Size.Height; y++ {
		for x := 0; x < g.Size.Width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = uint8(x/16), uint8(y/16), 90, 255
		}
	}
	return img, nil
}

// Directory is a mutable window directory.
type Directory struct {
	mu       sync.Mutex
	Windows  []model.WindowRecord
	Screen   model.Size
	FocusErr error
	ListErr  error
	Focused  []int
}

func (d *Directory) List(ctx context.Context) ([]model.WindowRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ListErr != nil {
		return nil, d.ListErr
	}
	out := make([]model.WindowRecord, len(d.Windows))
	for i, w := range d.Windows {
		out[i] = w.WithPrimaryFlag(d.Screen)
	}
	return out, nil
}

func (d *Directory) Focus(ctx context.Context, id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FocusErr != nil {
		return d.FocusErr
	}
	for _, w := range d.Windows {
		if w.ID == id {
			d.Focused = append(d.Focused, id)
			return nil
		}
	}
	return model.WindowNotFound(fmt.Sprintf("id %d", id))
}

func (d *Directory) ScreenSize(ctx context.Context) (model.Size, error) {
	return d.Screen, nil
}

// Move changes a window's bounds.
func (d *Directory) Move(id int, bounds model.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.Windows {
		if d.Windows[i].ID == id {
			d.Windows[i].Bounds = bounds
		}
	}
}

// Remove deletes a window.
func (d *Directory) Remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.Windows[:0]
	for _, w := range d.Windows {
		if w.ID != id {
			out = append(out, w)
		}
	}
	d.Windows = out
}

// FocusCount reports how many times id was focused.
func (d *Directory) FocusCount(id int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, f := range d.Focused {
		if f == id {
			n++
		}
	}
	return n
}

// Event is one recorded input call.
type Event struct {
	Op        string
	X, Y      int
	Button    platform.MouseButton
	HoldMs    int
	Double    bool
	Key       string
	Modifiers []string
	Text      string
}

// Input records every call and tracks the pointer position.
type Input struct {
	mu      sync.Mutex
	Events  []Event
	Pointer model.Point
	// FailOn makes the named operation return an error.
	FailOn string
}

var ErrInjected = errors.New("injected input failure")

func (in *Input) record(e Event) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.FailOn == e.Op {
		return ErrInjected
	}
	in.Events = append(in.Events, e)
	if e.Op == "move" {
		in.Pointer = model.Point{X: e.X, Y: e.Y}
	}
	return nil
}

func (in *Input) MovePointer(ctx context.Context, x, y int) error {
	return in.record(Event{Op: "move", X: x, Y: y})
}

func (in *Input) Click(ctx context.Context, button platform.MouseButton, holdMs int, double bool) error {
	return in.record(Event{Op: "click", Button: button, HoldMs: holdMs, Double: double})
}

func (in *Input) KeyTap(ctx context.Context, key string, modifiers []string) error {
	return in.record(Event{Op: "tap", Key: key, Modifiers: modifiers})
}

func (in *Input) KeyHold(ctx context.Context, key string, modifiers []string, holdMs int) error {
	return in.record(Event{Op: "hold", Key: key, Modifiers: modifiers, HoldMs: holdMs})
}

func (in *Input) TypeText(ctx context.Context, text string, delayMs int) error {
	return in.record(Event{Op: "type", Text: text, HoldMs: delayMs})
}

func (in *Input) PointerPosition(ctx context.Context) (model.Point, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.FailOn == "position" {
		return model.Point{}, ErrInjected
	}
	return in.Pointer, nil
}

// Ops lists the recorded operation names in order.
func (in *Input) Ops() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]string, len(in.Events))
	for i, e := range in.Events {
		out[i] = e.Op
	}
	return out
}

// Last returns the most recent event with op.
func (in *Input) Last(op string) (Event, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := len(in.Events) - 1; i >= 0; i-- {
		if in.Events[i].Op == op {
			return in.Events[i], true
		}
	}
	return Event{}, false
}

var (
	_ platform.ScreenGrabber   = (*Grabber)(nil)
	_ platform.WindowDirectory = (*Directory)(nil)
	_ platform.InputDriver     = (*Input)(nil)
)
