package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies core failures. Kinds are surfaced at the tool
// boundary as a machine-readable code next to the message.
type ErrorKind string

const (
	KindWindowNotFound     ErrorKind = "WindowNotFound"
	KindInvalidBounds      ErrorKind = "InvalidBounds"
	KindUnsupportedDisplay ErrorKind = "UnsupportedDisplay"
	KindPayloadTooLarge    ErrorKind = "PayloadTooLarge"
	KindStaleMetadata      ErrorKind = "StaleOrMissingMetadata"
	KindFocusFailed        ErrorKind = "FocusFailed"
	KindStepFailed         ErrorKind = "StepFailed"
	KindInvalidParams      ErrorKind = "InvalidParams"
	KindUnsupported        ErrorKind = "Unsupported"
	KindInternal           ErrorKind = "Internal"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrWindowNotFound     = errors.New("window not found")
	ErrInvalidBounds      = errors.New("invalid bounds")
	ErrUnsupportedDisplay = errors.New("unsupported display")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrStaleMetadata      = errors.New("stale or missing capture metadata")
	ErrFocusFailed        = errors.New("focus failed")
	ErrStepFailed         = errors.New("step failed")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrUnsupported        = errors.New("unsupported")
)

var sentinels = map[ErrorKind]error{
	KindWindowNotFound:     ErrWindowNotFound,
	KindInvalidBounds:      ErrInvalidBounds,
	KindUnsupportedDisplay: ErrUnsupportedDisplay,
	KindPayloadTooLarge:    ErrPayloadTooLarge,
	KindStaleMetadata:      ErrStaleMetadata,
	KindFocusFailed:        ErrFocusFailed,
	KindStepFailed:         ErrStepFailed,
	KindInvalidParams:      ErrInvalidParams,
	KindUnsupported:        ErrUnsupported,
}

// Error is a classified core error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// Errorf builds a classified error. Causes wrapped with %w stay reachable
// through errors.Is and errors.As.
func Errorf(kind ErrorKind, format string, args ...any) error {
	wrapped := fmt.Errorf(format, args...)
	if errors.Unwrap(wrapped) == nil {
		return &Error{Kind: kind, Msg: wrapped.Error()}
	}
	return &Error{Kind: kind, Err: wrapped}
}

// KindOf returns the kind of the outermost classified error in err's chain,
// or KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// WindowNotFound reports a failed id or title lookup.
func WindowNotFound(identifier string) error {
	return &Error{Kind: KindWindowNotFound, Msg: fmt.Sprintf("window not found: %s", identifier)}
}

// InvalidBounds reports a rectangle that is empty or outside its source.
func InvalidBounds(what string, r Rect, within *Size) error {
	msg := fmt.Sprintf("invalid %s bounds (%s)", what, r)
	if within != nil {
		msg = fmt.Sprintf("%s: outside %s source image", msg, within)
	}
	return &Error{Kind: KindInvalidBounds, Msg: msg}
}

// UnsupportedDisplay reports a target that is not on the primary display.
func UnsupportedDisplay(bounds Rect, location string) error {
	return &Error{
		Kind: KindUnsupportedDisplay,
		Msg: fmt.Sprintf("window at (%s) is on display %q; only the primary display can be captured",
			bounds, location),
	}
}

// PayloadTooLarge reports an encoded image above the size cap.
func PayloadTooLarge(size, limit int) error {
	return &Error{
		Kind: KindPayloadTooLarge,
		Msg: fmt.Sprintf("encoded image is %d bytes, over the %d byte limit; try a smaller region or window",
			size, limit),
	}
}

// StepFailed wraps a batch step error with its index and kind.
func StepFailed(index int, kind string, err error) error {
	return &Error{Kind: KindStepFailed, Msg: fmt.Sprintf("step %d (%s) failed", index, kind), Err: err}
}
