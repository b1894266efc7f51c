// Package server exposes the desktop operations as MCP tools.
package server

import (
	"context"
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/logger"
)

// Transports.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// Executor runs a named tool operation.
type Executor interface {
	Execute(ctx context.Context, kind string, params actions.Params) actions.Result
}

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	Version   string
}

// Server wraps the MCP server around an Executor.
type Server struct {
	exec Executor
	mcp  *mcpserver.MCPServer
	log  *zap.Logger
}

// New creates an MCP server with every desktop tool registered.
func New(exec Executor, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		exec: exec,
		log:  log,
		mcp: mcpserver.NewMCPServer(
			"desktop-pilot",
			version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
	}
	for _, t := range tools() {
		s.mcp.AddTool(t.tool, s.handler(t.kind))
	}
	return s
}

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	ctx = logger.ContextWithLogger(ctx, s.log)
	switch cfg.Transport {
	case TransportStdio, "":
		s.log.Info("serving MCP over stdio")
		stdio := mcpserver.NewStdioServer(s.mcp)
		stdio.SetContextFunc(func(c context.Context) context.Context {
			return logger.ContextWithLogger(c, s.log)
		})
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	case TransportStreamableHTTP:
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", zap.String("addr", addr))
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Start(addr) }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	default:
		return fmt.Errorf("unsupported transport: %s (use %s or %s)", cfg.Transport, TransportStdio, TransportStreamableHTTP)
	}
}
