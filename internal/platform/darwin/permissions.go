//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}
*/
import "C"

import "github.com/mj1618/desktop-pilot/internal/model"

// CheckAccessibilityPermission returns a FocusFailed error with setup
// instructions when the process is not trusted for Accessibility.
func CheckAccessibilityPermission() error {
	if C.is_trusted() == 0 {
		return model.Errorf(model.KindFocusFailed,
			"accessibility permission required\n\n"+
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n"+
				"Add the app running desktop-pilot (terminal, IDE or MCP host), then restart it.")
	}
	return nil
}

// IsAccessibilityTrusted reports whether the process has Accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.is_trusted() != 0
}
