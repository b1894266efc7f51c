// Package darwin provides the macOS backend: CoreGraphics window listing,
// Accessibility and AppKit focusing, robotgo input and kbinani capture.
// It requires cgo; without it no backend is registered and the CLI reports
// the platform as unsupported.
package darwin
