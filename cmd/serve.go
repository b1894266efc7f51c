package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/server"
	"github.com/mj1618/desktop-pilot/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the desktop tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes screen_capture,
window_capture, list_windows, mouse_move, mouse_click, keyboard_press,
keyboard_type, get_pointer_position and multiple_desktop_actions.

Capture metadata lives for the lifetime of the server, so coordinates from a
capture can be passed straight to the click and move tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-pilot serve
  desktop-pilot serve --transport streamable-http --port 8080
  desktop-pilot serve --debug --marker-dir /tmp/markers`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("quality", 60, "JPEG quality 1-100")
	serveCmd.Flags().Int("max-bytes", 300*1024, "Maximum encoded image size in bytes")
	serveCmd.Flags().Duration("ttl", 0, "Capture metadata lifetime (default 5m)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(appConfig)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()

	cfg := server.Config{
		Transport: appConfig.Server.Transport,
		Port:      appConfig.Server.Port,
		Version:   version.Version,
	}
	srv := server.New(a.orch, cfg, a.log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx, cfg)
}
