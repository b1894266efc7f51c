package x11

import "testing"

func TestKeysymFor(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		wantShift bool
	}{
		{"enter", "Return", false},
		{"Escape", "Escape", false},
		{"pagedown", "Next", false},
		{"f5", "F5", false},
		{"F12", "F12", false},
		{"a", "a", false},
		{"A", "a", true},
		{"?", "question", true},
		{"/", "slash", false},
		{"Home", "Home", false},
		{"XF86AudioMute", "XF86AudioMute", false},
	}
	for _, tt := range tests {
		got, shift := keysymFor(tt.in)
		if got != tt.want || shift != tt.wantShift {
			t.Errorf("keysymFor(%q) = %q,%v want %q,%v", tt.in, got, shift, tt.want, tt.wantShift)
		}
	}
}

func TestModifierKeysym(t *testing.T) {
	for in, want := range map[string]string{"cmd": "Super_L", "CTRL": "Control_L", " shift ": "Shift_L", "Hyper_L": "Hyper_L"} {
		if got := modifierKeysym(in); got != want {
			t.Errorf("modifierKeysym(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCharToKey(t *testing.T) {
	if k := charToKey('\n'); k.keysym != "Return" {
		t.Errorf("newline maps to %q", k.keysym)
	}
	if k := charToKey('Z'); k.keysym != "z" || !k.needsShift {
		t.Errorf("Z maps to %+v", k)
	}
}
