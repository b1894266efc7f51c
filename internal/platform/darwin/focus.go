package darwin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

const (
	activationWait  = 300 * time.Millisecond
	activationCheck = 25 * time.Millisecond
)

// windowOps are the native calls the focus strategies are built from.
type windowOps struct {
	// activate brings pid's application to the front.
	activate func(pid int) error
	// raise raises pid's window titled title above its siblings.
	raise func(pid int, title string) error
	// script runs an AppleScript source.
	script func(ctx context.Context, src string) error
	// frontWindow returns the id of the topmost normal window.
	frontWindow func(ctx context.Context) (int, error)
	wait        time.Duration
}

// focusStrategies builds the ordered focus chain. Activating an application
// only fronts its key window, so every strategy raises the requested window
// and succeeds only once that window is on top.
func focusStrategies(ops windowOps) []platform.FocusStrategy {
	return []platform.FocusStrategy{
		{Name: "activate-and-raise", Focus: func(ctx context.Context, w model.WindowRecord) error {
			if err := ops.activate(w.PID); err != nil {
				return err
			}
			if err := ops.raise(w.PID, w.Title); err != nil {
				return err
			}
			return waitFrontWindow(ctx, ops, w.ID)
		}},
		{Name: "system-events", Focus: func(ctx context.Context, w model.WindowRecord) error {
			if err := ops.script(ctx, raiseScript(w)); err != nil {
				return err
			}
			return waitFrontWindow(ctx, ops, w.ID)
		}},
	}
}

func waitFrontWindow(ctx context.Context, ops windowOps, id int) error {
	deadline := time.Now().Add(ops.wait)
	for {
		front, err := ops.frontWindow(ctx)
		if err != nil {
			return err
		}
		if front == id {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("window %d is not frontmost (window %d is)", id, front)
		}
		if err := platform.Sleep(ctx, activationCheck); err != nil {
			return err
		}
	}
}

// raiseScript fronts w's process and raises w through System Events.
func raiseScript(w model.WindowRecord) string {
	target := "window 1"
	if w.Title != "" {
		target = fmt.Sprintf("(first window whose name is %s)", appleScriptString(w.Title))
	}
	return fmt.Sprintf(`tell application "System Events"
	set p to first process whose unix id is %d
	set frontmost of p to true
	perform action "AXRaise" of %s of p
end tell`, w.PID, target)
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
