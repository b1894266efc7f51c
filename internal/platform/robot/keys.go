// Package robot drives mouse and keyboard input through robotgo.
package robot

import "strings"

var keyAliases = map[string]string{
	"return":  "enter",
	"escape":  "esc",
	"del":     "delete",
	"option":  "alt",
	"command": "cmd",
	"control": "ctrl",
	"super":   "cmd",
	"win":     "cmd",
	"meta":    "cmd",
}

// KeyName normalizes a key or modifier name to robotgo's vocabulary.
// Single characters keep their case.
func KeyName(key string) string {
	k := strings.TrimSpace(key)
	if len([]rune(k)) == 1 {
		return k
	}
	k = strings.ToLower(k)
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

func modifierArgs(modifiers []string) []interface{} {
	args := make([]interface{}, 0, len(modifiers))
	for _, m := range modifiers {
		args = append(args, KeyName(m))
	}
	return args
}
