package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// LookupWindow finds a window by id, or else by case-insensitive title
// substring. The first match in directory order wins.
func LookupWindow(ctx context.Context, dir WindowDirectory, q WindowQuery) (model.WindowRecord, error) {
	if q.ID <= 0 && q.Title == "" {
		return model.WindowRecord{}, model.Errorf(model.KindInvalidParams, "either a window id or a window title is required")
	}
	windows, err := dir.List(ctx)
	if err != nil {
		return model.WindowRecord{}, fmt.Errorf("list windows: %w", err)
	}
	if q.ID > 0 {
		for _, w := range windows {
			if w.ID == q.ID {
				return w, nil
			}
		}
		return model.WindowRecord{}, model.WindowNotFound(q.String())
	}
	needle := strings.ToLower(q.Title)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return w, nil
		}
	}
	return model.WindowRecord{}, model.WindowNotFound(q.String())
}

// FilterWindows returns the windows whose title contains title,
// case-insensitively. An empty title returns all windows.
func FilterWindows(windows []model.WindowRecord, title string) []model.WindowRecord {
	if title == "" {
		return windows
	}
	needle := strings.ToLower(title)
	var out []model.WindowRecord
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			out = append(out, w)
		}
	}
	return out
}
