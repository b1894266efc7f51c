package main

import (
	"github.com/mj1618/desktop-pilot/cmd"

	_ "github.com/mj1618/desktop-pilot/internal/platform/darwin"
	_ "github.com/mj1618/desktop-pilot/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
