package x11

import (
	"strings"
	"unicode"
)

var (
	shiftChars = map[rune]string{
		'!': "exclam", '@': "at", '#': "numbersign", '$': "dollar",
		'%': "percent", '^': "asciicircum", '&': "ampersand", '*': "asterisk",
		'(': "parenleft", ')': "parenright", '_': "underscore", '+': "plus",
		'{': "braceleft", '}': "braceright", '|': "bar", ':': "colon",
		'"': "quotedbl", '<': "less", '>': "greater", '?': "question",
		'~': "asciitilde",
	}

	punctuationChars = map[rune]string{
		'.': "period", ',': "comma", ';': "semicolon", '\'': "apostrophe",
		'/': "slash", '\\': "backslash", '-': "minus", '=': "equal",
		'[': "bracketleft", ']': "bracketright", '`': "grave",
	}

	modifierKeysyms = map[string]string{
		"ctrl":    "Control_L",
		"control": "Control_L",
		"alt":     "Alt_L",
		"option":  "Alt_L",
		"shift":   "Shift_L",
		"super":   "Super_L",
		"meta":    "Meta_L",
		"win":     "Super_L",
		"cmd":     "Super_L",
		"command": "Super_L",
	}

	namedKeysyms = map[string]string{
		"enter":     "Return",
		"return":    "Return",
		"tab":       "Tab",
		"space":     "space",
		"backspace": "BackSpace",
		"delete":    "Delete",
		"del":       "Delete",
		"esc":       "Escape",
		"escape":    "Escape",
		"up":        "Up",
		"down":      "Down",
		"left":      "Left",
		"right":     "Right",
		"home":      "Home",
		"end":       "End",
		"pageup":    "Prior",
		"pagedown":  "Next",
		"insert":    "Insert",
		"capslock":  "Caps_Lock",
	}
)

// keyStroke is the keysym for one typed character.
type keyStroke struct {
	keysym     string
	needsShift bool
}

func charToKey(char rune) keyStroke {
	if char >= 'A' && char <= 'Z' {
		return keyStroke{keysym: strings.ToLower(string(char)), needsShift: true}
	}
	if s, ok := shiftChars[char]; ok {
		return keyStroke{keysym: s, needsShift: true}
	}
	if s, ok := punctuationChars[char]; ok {
		return keyStroke{keysym: s}
	}
	switch char {
	case '\n':
		return keyStroke{keysym: "Return"}
	case '\t':
		return keyStroke{keysym: "Tab"}
	case ' ':
		return keyStroke{keysym: "space"}
	}
	return keyStroke{keysym: string(char)}
}

// keysymFor maps a user key name ("enter", "f5", "a", "A") to an X keysym.
func keysymFor(key string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(key))
	if s, ok := namedKeysyms[lower]; ok {
		return s, false
	}
	if len(lower) >= 2 && lower[0] == 'f' && isDigits(lower[1:]) {
		return "F" + lower[1:], false
	}
	if r := []rune(key); len(r) == 1 {
		ks := charToKey(r[0])
		return ks.keysym, ks.needsShift
	}
	return key, false
}

func modifierKeysym(mod string) string {
	if s, ok := modifierKeysyms[strings.ToLower(strings.TrimSpace(mod))]; ok {
		return s
	}
	return mod
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
