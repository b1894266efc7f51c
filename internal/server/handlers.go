package server

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/output"
)

type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

func (s *Server) handler(kind string) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logger.ContextWithLogger(ctx, s.log.With(zap.String("request_id", uuid.NewString())))
		res := s.exec.Execute(ctx, kind, actions.Params(request.GetArguments()))
		return toolResult(res), nil
	}
}

// toolResult renders a Result as MCP content: a YAML text body, plus the
// encoded image for captures. Failures are marked IsError.
func toolResult(res actions.Result) *mcp.CallToolResult {
	if !res.Success {
		return mcp.NewToolResultError(output.YAML(res))
	}
	text := output.YAML(res)
	if res.Image == nil || len(res.Image.Data) == 0 {
		return mcp.NewToolResultText(text)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(res.Image.Data),
				MIMEType: res.Image.MimeType,
			},
		},
	}
}
