package server

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

type toolDef struct {
	kind string
	tool mcp.Tool
}

func tools() []toolDef {
	return []toolDef{
		{actions.KindScreenCapture, mcp.NewTool(actions.KindScreenCapture,
			mcp.WithDescription("Capture the primary display (or a region of it) as a downscaled JPEG. "+
				"Coordinates in the returned image can be passed to mouse_click without a windowId."),
			mcp.WithObject("region",
				mcp.Description("Optional region in logical screen coordinates: {x, y, width, height}"),
				mcp.Properties(map[string]any{
					"x":      map[string]any{"type": "number"},
					"y":      map[string]any{"type": "number"},
					"width":  map[string]any{"type": "number"},
					"height": map[string]any{"type": "number"},
				}),
			),
		)},
		{actions.KindWindowCapture, mcp.NewTool(actions.KindWindowCapture,
			mcp.WithDescription("Focus a window and capture it. Coordinates in the returned image are "+
				"window-relative; pass them to mouse_click or mouse_move with the same windowId."),
			mcp.WithNumber("windowId", mcp.Description("Window ID from list_windows")),
			mcp.WithString("windowTitle", mcp.Description("Case-insensitive title substring, used when windowId is absent")),
		)},
		{actions.KindListWindows, mcp.NewTool(actions.KindListWindows,
			mcp.WithDescription("List top-level windows with IDs, titles, owners and logical bounds"),
			mcp.WithString("title", mcp.Description("Filter by title substring")),
		)},
		{actions.KindMouseMove, mcp.NewTool(actions.KindMouseMove,
			mcp.WithDescription("Move the pointer to a point in a window's last capture"),
			mcp.WithNumber("windowId", mcp.Description("Window ID the coordinates refer to"), mcp.Required()),
			mcp.WithNumber("x", mcp.Description("X in the captured image"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y in the captured image"), mcp.Required()),
		)},
		{actions.KindMouseClick, mcp.NewTool(actions.KindMouseClick,
			mcp.WithDescription("Click at a point in the last screen or window capture, or at the current pointer position when x/y are omitted"),
			mcp.WithNumber("x", mcp.Description("X in the captured image")),
			mcp.WithNumber("y", mcp.Description("Y in the captured image")),
			mcp.WithNumber("windowId", mcp.Description("Window the coordinates refer to; omit for screen captures")),
			mcp.WithString("button", mcp.Description("Mouse button"), mcp.Enum("left", "right", "middle")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
			mcp.WithNumber("pressLength", mcp.Description("Milliseconds to hold the button (0-5000)")),
		)},
		{actions.KindKeyboardPress, mcp.NewTool(actions.KindKeyboardPress,
			mcp.WithDescription("Press a key, optionally with modifiers and a hold duration"),
			mcp.WithString("key", mcp.Description("Key name, e.g. enter, tab, a, f5"), mcp.Required()),
			mcp.WithArray("modifiers", mcp.Description("Modifiers: cmd, ctrl, alt, shift"),
				mcp.Items(map[string]any{"type": "string"})),
			mcp.WithNumber("pressLength", mcp.Description("Milliseconds to hold the key (0-5000)")),
			mcp.WithNumber("windowId", mcp.Description("Focus this window first")),
		)},
		{actions.KindKeyboardType, mcp.NewTool(actions.KindKeyboardType,
			mcp.WithDescription("Type text"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithNumber("delayMs", mcp.Description("Delay between characters in milliseconds")),
			mcp.WithNumber("windowId", mcp.Description("Focus this window first")),
		)},
		{actions.KindPointerPosition, mcp.NewTool(actions.KindPointerPosition,
			mcp.WithDescription("Get the pointer position in logical screen coordinates"),
		)},
		{actions.KindBatch, mcp.NewTool(actions.KindBatch,
			mcp.WithDescription("Run several desktop actions in order. Each step is {kind, params, delayAfterMs}. "+
				"Capture steps return only their summary."),
			mcp.WithArray("actions", mcp.Description("Steps to run"), mcp.Required(),
				mcp.Items(map[string]any{"type": "object"})),
			mcp.WithBoolean("continueOnError", mcp.Description("Keep going after a failed step (default false)")),
		)},
	}
}
