package model

import "fmt"

// SubjectKind distinguishes full-screen captures from window captures.
type SubjectKind int

const (
	SubjectScreen SubjectKind = iota
	SubjectWindow
)

// Subject identifies what a capture and its cached metadata refer to.
// It is comparable and used directly as a map key.
type Subject struct {
	Kind     SubjectKind
	WindowID int
}

// FullScreen is the primary display subject.
func FullScreen() Subject {
	return Subject{Kind: SubjectScreen}
}

// Window returns the subject for a window id.
func Window(id int) Subject {
	return Subject{Kind: SubjectWindow, WindowID: id}
}

// IsWindow reports whether the subject is a window.
func (s Subject) IsWindow() bool {
	return s.Kind == SubjectWindow
}

func (s Subject) String() string {
	if s.IsWindow() {
		return fmt.Sprintf("window:%d", s.WindowID)
	}
	return "screen"
}
