package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/synheart-ai/synheart-core/internal/core"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// handleGetCurrentHSV returns the latest published HSV as JSON, or an
// explicit "no fusion yet" error result. It never blocks on a tick.
func handleGetCurrentHSV(c *core.Core) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		hsv, ok := c.Latest()
		if !ok {
			return errResult("no fusion tick has completed yet"), nil
		}
		data, err := json.MarshalIndent(hsv, "", "  ")
		if err != nil {
			return errResult(err.Error()), nil
		}
		return newTextResult(string(data)), nil
	}
}

// handleGetHSISnapshot runs the exporter over the latest HSV and
// returns the HSI 1.0 payload as JSON.
func handleGetHSISnapshot(c *core.Core) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, ok := c.Snapshot()
		if !ok {
			return errResult("no fusion tick has completed yet"), nil
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return errResult(err.Error()), nil
		}
		return newTextResult(string(data)), nil
	}
}

// windowTypeInfo is the JSON shape returned by list_window_types.
type windowTypeInfo struct {
	Name        string `json:"name"`
	DurationS   float64 `json:"duration_s"`
	Label       string `json:"label"`
}

// handleListWindowTypes is stateless: it reports the four fixed
// window types, never touching the core handle.
func handleListWindowTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []windowTypeInfo
	for _, w := range hsimodel.AllWindowTypes() {
		infos = append(infos, windowTypeInfo{
			Name:      string(w),
			DurationS: w.Duration().Seconds(),
			Label:     w.Label(),
		})
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return errResult(err.Error()), nil
	}
	return newTextResult(string(data)), nil
}

// newTextResult creates a successful MCP tool result with text content.
func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

// errResult creates an MCP tool error result (IsError=true). This is
// a tool-level error, not a transport-level JSON-RPC error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}
