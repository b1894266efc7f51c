// Package actions implements the desktop tool operations on top of the
// capture service, the coordinate resolver and the platform input driver.
package actions

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/capture"
	"github.com/mj1618/desktop-pilot/internal/coords"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Tool names.
const (
	KindScreenCapture   = "screen_capture"
	KindWindowCapture   = "window_capture"
	KindListWindows     = "list_windows"
	KindMouseMove       = "mouse_move"
	KindMouseClick      = "mouse_click"
	KindKeyboardPress   = "keyboard_press"
	KindKeyboardType    = "keyboard_type"
	KindPointerPosition = "get_pointer_position"
	KindBatch           = "multiple_desktop_actions"
)

const (
	MaxPressLengthMs = 5000
	MaxDelayAfterMs  = 60000
	MaxTypeDelayMs   = 5000
)

// PointResolver maps AI-image coordinates to logical screen coordinates.
type PointResolver interface {
	Resolve(ctx context.Context, subject model.Subject, aiX, aiY int) (coords.Resolution, error)
}

// MoveObserver is told where the system reports the pointer after a move to
// a resolved point. A PointResolver may implement it.
type MoveObserver interface {
	PointerMoved(ctx context.Context, subject model.Subject, res coords.Resolution, reported model.Point)
}

// Capturer produces agent-ready captures.
type Capturer interface {
	CaptureScreen(ctx context.Context, region *model.Rect) (*capture.ImageResult, error)
	CaptureWindow(ctx context.Context, q platform.WindowQuery) (*capture.ImageResult, error)
}

// Options holds the fixed delays between sub-steps.
type Options struct {
	FocusSettle time.Duration
	ClickSettle time.Duration
}

// DefaultOptions returns the production delays.
func DefaultOptions() Options {
	return Options{
		FocusSettle: 500 * time.Millisecond,
		ClickSettle: 50 * time.Millisecond,
	}
}

type handler func(ctx context.Context, p Params) (Result, error)

// Orchestrator executes tool operations.
type Orchestrator struct {
	input    platform.InputDriver
	windows  platform.WindowDirectory
	capturer Capturer
	resolver PointResolver
	opts     Options
	handlers map[string]handler
}

// New creates an Orchestrator.
func New(input platform.InputDriver, windows platform.WindowDirectory, capturer Capturer, resolver PointResolver, opts Options) *Orchestrator {
	o := &Orchestrator{
		input:    input,
		windows:  windows,
		capturer: capturer,
		resolver: resolver,
		opts:     opts,
	}
	o.handlers = map[string]handler{
		KindScreenCapture:   o.screenCapture,
		KindWindowCapture:   o.windowCapture,
		KindListWindows:     o.listWindows,
		KindMouseMove:       o.mouseMove,
		KindMouseClick:      o.mouseClick,
		KindKeyboardPress:   o.keyboardPress,
		KindKeyboardType:    o.keyboardType,
		KindPointerPosition: o.pointerPosition,
		KindBatch:           o.batch,
	}
	return o
}

// Kinds lists the supported operation names.
func (o *Orchestrator) Kinds() []string {
	out := make([]string, 0, len(o.handlers))
	for k := range o.handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Execute runs the named operation. Every failure, including a panic, is
// returned as an unsuccessful Result.
func (o *Orchestrator) Execute(ctx context.Context, kind string, params Params) (res Result) {
	ctx = logger.With(ctx, zap.String("tool", kind))
	log := logger.FromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			res = Failure(fmt.Errorf("internal error in %s: %v", kind, r))
		}
	}()

	h, ok := o.handlers[kind]
	if !ok {
		if kind == "" {
			return Failure(invalid("missing operation kind"))
		}
		return Failure(invalid("unknown operation kind %q (supported: %v)", kind, o.Kinds()))
	}
	if params == nil {
		params = Params{}
	}

	res, err := h(ctx, params)
	if err != nil {
		log.Warn("tool failed", zap.Error(err), zap.String("error_kind", string(model.KindOf(err))), zap.Duration("elapsed", time.Since(start)))
		return Failure(err)
	}
	log.Debug("tool completed", zap.Duration("elapsed", time.Since(start)))
	return res
}

// focusWindow looks up, focuses and waits for window id to settle.
func (o *Orchestrator) focusWindow(ctx context.Context, id int) (model.WindowRecord, error) {
	w, err := platform.LookupWindow(ctx, o.windows, platform.WindowQuery{ID: id})
	if err != nil {
		return w, err
	}
	if err := o.windows.Focus(ctx, id); err != nil {
		if model.KindOf(err) != model.KindFocusFailed {
			err = &model.Error{Kind: model.KindFocusFailed, Msg: fmt.Sprintf("could not focus window %d (%q)", id, w.Title), Err: err}
		}
		return w, err
	}
	return w, platform.Sleep(ctx, o.opts.FocusSettle)
}

// optionalFocus focuses windowId when it is present.
func (o *Orchestrator) optionalFocus(ctx context.Context, p Params) (int, error) {
	id, ok, err := optIntParam(p, "windowId")
	if err != nil || !ok || id == 0 {
		return 0, err
	}
	if _, err := o.focusWindow(ctx, id); err != nil {
		return id, err
	}
	return id, nil
}

func subjectFor(windowID int) model.Subject {
	if windowID > 0 {
		return model.Window(windowID)
	}
	return model.FullScreen()
}
