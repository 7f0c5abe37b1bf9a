package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
)

const toolPrefix = "legal_"

// Handler exposes each assistant function as one MCP tool, served over
// stdio. The credential comes from the environment or config file;
// stdio transports carry no sessions.
type Handler struct {
	svc        *assistant.Service
	credential func() string
	server     *mcp.Server
	tools      []string
}

func NewHandler(svc *assistant.Service, credential func() string) *Handler {
	h := &Handler{svc: svc, credential: credential}
	h.initServer()
	return h
}

func (h *Handler) initServer() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "Legal AI Assistant",
		Version: "1.0.0",
	}, nil)

	for _, spec := range h.svc.Registry().List() {
		name := toolPrefix + spec.ID
		mcp.AddTool(server, &mcp.Tool{
			Name:        name,
			Description: toolDescription(spec),
		}, h.wrapTool(spec.ID))
		h.tools = append(h.tools, name)
	}

	h.server = server
}

// Tools lists the registered tool names in declaration order.
func (h *Handler) Tools() []string {
	return h.tools
}

// Run serves the tool set over stdio until the client disconnects or
// ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	return h.server.Run(ctx, &mcp.StdioTransport{})
}

// wrapTool adapts one assistant function to the MCP tool contract.
// Failures come back as IsError results carrying the user-visible
// message; the server itself never errors out of a tool call.
func (h *Handler) wrapTool(id string) func(ctx context.Context, req *mcp.CallToolRequest, input any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input any) (*mcp.CallToolResult, any, error) {
		fields, ok := input.(map[string]any)
		if input == nil {
			fields = map[string]any{}
		} else if !ok {
			return errorResult("tool input must be a JSON object of field values"), nil, nil
		}

		result, err := h.svc.Run(ctx, id, fields, h.credential())
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: result.Text},
			},
		}, nil, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// toolDescription renders the field table into the description so an
// agent can fill the input without out-of-band docs.
func toolDescription(spec *assistant.FunctionSpec) string {
	var b strings.Builder
	b.WriteString(spec.Title)
	b.WriteString(". Input fields: ")
	for i, f := range spec.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Name)
		b.WriteString(" (")
		b.WriteString(string(f.Kind))
		if len(f.Options) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(f.Options, " | "))
		}
		if f.Required {
			b.WriteString(", required")
		}
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}
