//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreGraphics -framework CoreFoundation -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    int id;
    int pid;
    double x, y, w, h;
    char title[512];
    char owner[256];
} dp_window;

static int dp_list_windows(dp_window *out, int max) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
    if (list == NULL) {
        return -1;
    }
    int count = 0;
    CFIndex n = CFArrayGetCount(list);
    for (CFIndex i = 0; i < n && count < max; i++) {
        CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);
        int layer = 0;
        CFNumberRef num = (CFNumberRef)CFDictionaryGetValue(d, kCGWindowLayer);
        if (num != NULL) {
            CFNumberGetValue(num, kCFNumberIntType, &layer);
        }
        if (layer != 0) {
            continue;
        }
        dp_window *w = &out[count];
        memset(w, 0, sizeof(*w));
        num = (CFNumberRef)CFDictionaryGetValue(d, kCGWindowNumber);
        if (num != NULL) {
            CFNumberGetValue(num, kCFNumberIntType, &w->id);
        }
        num = (CFNumberRef)CFDictionaryGetValue(d, kCGWindowOwnerPID);
        if (num != NULL) {
            CFNumberGetValue(num, kCFNumberIntType, &w->pid);
        }
        CFDictionaryRef b = (CFDictionaryRef)CFDictionaryGetValue(d, kCGWindowBounds);
        CGRect r;
        if (b != NULL && CGRectMakeWithDictionaryRepresentation(b, &r)) {
            w->x = r.origin.x;
            w->y = r.origin.y;
            w->w = r.size.width;
            w->h = r.size.height;
        }
        CFStringRef s = (CFStringRef)CFDictionaryGetValue(d, kCGWindowName);
        if (s != NULL) {
            CFStringGetCString(s, w->title, sizeof(w->title), kCFStringEncodingUTF8);
        }
        s = (CFStringRef)CFDictionaryGetValue(d, kCGWindowOwnerName);
        if (s != NULL) {
            CFStringGetCString(s, w->owner, sizeof(w->owner), kCFStringEncodingUTF8);
        }
        count++;
    }
    CFRelease(list);
    return count;
}

static void dp_main_display_size(double *w, double *h) {
    CGRect r = CGDisplayBounds(CGMainDisplayID());
    *w = r.size.width;
    *h = r.size.height;
}

static int dp_activate_pid(int pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) {
            return -1;
        }
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -2;
    }
}

// dp_ax_raise raises the first window of pid whose title equals title, or
// the first window when title is empty.
static int dp_ax_raise(int pid, const char *title) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (app == NULL) {
        return -1;
    }
    CFArrayRef windows = NULL;
    if (AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows) != kAXErrorSuccess || windows == NULL) {
        CFRelease(app);
        return -1;
    }
    CFStringRef want = NULL;
    if (title != NULL && title[0] != '\0') {
        want = CFStringCreateWithCString(NULL, title, kCFStringEncodingUTF8);
    }
    int rc = -2;
    for (CFIndex i = 0; i < CFArrayGetCount(windows); i++) {
        AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
        if (want != NULL) {
            CFStringRef t = NULL;
            if (AXUIElementCopyAttributeValue(w, kAXTitleAttribute, (CFTypeRef *)&t) != kAXErrorSuccess || t == NULL) {
                continue;
            }
            Boolean eq = CFStringCompare(t, want, 0) == kCFCompareEqualTo;
            CFRelease(t);
            if (!eq) {
                continue;
            }
        }
        AXUIElementSetAttributeValue(app, kAXFrontmostAttribute, kCFBooleanTrue);
        rc = AXUIElementPerformAction(w, kAXRaiseAction) == kAXErrorSuccess ? 0 : -3;
        break;
    }
    if (want != NULL) {
        CFRelease(want);
    }
    CFRelease(windows);
    CFRelease(app);
    return rc;
}
*/
import "C"

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unsafe"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

const maxWindows = 512

// Directory lists on-screen windows with CoreGraphics and focuses them
// with AppKit, Accessibility or AppleScript.
type Directory struct {
	strategies []platform.FocusStrategy
}

// NewDirectory returns the macOS window directory.
func NewDirectory() *Directory {
	d := &Directory{}
	d.strategies = focusStrategies(windowOps{
		activate:    activatePID,
		raise:       axRaise,
		script:      runAppleScript,
		frontWindow: d.frontWindow,
		wait:        activationWait,
	})
	return d
}

var _ platform.WindowDirectory = (*Directory)(nil)

// List returns normal-layer windows front to back. Bounds are in points.
func (d *Directory) List(ctx context.Context) ([]model.WindowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]C.dp_window, maxWindows)
	n := int(C.dp_list_windows(&buf[0], C.int(maxWindows)))
	if n < 0 {
		return nil, fmt.Errorf("CGWindowListCopyWindowInfo failed; screen recording permission may be missing")
	}
	screen, err := d.ScreenSize(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]model.WindowRecord, 0, n)
	for i := 0; i < n; i++ {
		w := buf[i]
		rec := model.WindowRecord{
			ID:        int(w.id),
			PID:       int(w.pid),
			Title:     C.GoString(&w.title[0]),
			OwnerName: C.GoString(&w.owner[0]),
			Bounds: model.Rect{
				X:      int(w.x),
				Y:      int(w.y),
				Width:  int(w.w),
				Height: int(w.h),
			},
		}
		if rec.Bounds.Size().Empty() {
			continue
		}
		windows = append(windows, rec.WithPrimaryFlag(screen))
	}
	return windows, nil
}

// Focus brings the window's application to the front and raises the window.
func (d *Directory) Focus(ctx context.Context, id int) error {
	windows, err := d.List(ctx)
	if err != nil {
		return err
	}
	for _, w := range windows {
		if w.ID == id {
			return platform.RunFocusStrategies(ctx, w, d.strategies)
		}
	}
	return model.WindowNotFound(fmt.Sprintf("id %d", id))
}

// ScreenSize returns the main display's size in points.
func (d *Directory) ScreenSize(ctx context.Context) (model.Size, error) {
	var w, h C.double
	C.dp_main_display_size(&w, &h)
	return model.Size{Width: int(w), Height: int(h)}, nil
}

func (d *Directory) frontWindow(ctx context.Context) (int, error) {
	windows, err := d.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(windows) == 0 {
		return 0, fmt.Errorf("no windows on screen")
	}
	return windows[0].ID, nil
}

func activatePID(pid int) error {
	switch C.dp_activate_pid(C.int(pid)) {
	case -1:
		return fmt.Errorf("no running application with pid %d", pid)
	case -2:
		return fmt.Errorf("activation of pid %d refused", pid)
	}
	return nil
}

func axRaise(pid int, title string) error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}
	ctitle := C.CString(title)
	defer C.free(unsafe.Pointer(ctitle))
	switch C.dp_ax_raise(C.int(pid), ctitle) {
	case -1:
		return fmt.Errorf("cannot read windows of pid %d", pid)
	case -2:
		return fmt.Errorf("no accessibility window titled %q", title)
	case -3:
		return fmt.Errorf("AXRaise refused")
	}
	return nil
}

func runAppleScript(ctx context.Context, src string) error {
	out, err := exec.CommandContext(ctx, "osascript", "-e", src).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
