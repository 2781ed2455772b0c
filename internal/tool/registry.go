// Package tool provides an in-process tool registry exposed to the agent
// as an MCP server over the control protocol.
package tool

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Registry holds named tools and dispatches calls to their handlers.
//
// Since the official MCP SDK's Server is designed for transport-based
// communication (stdio, HTTP, SSE), the registry keeps its own tool table
// for direct programmatic invocation via the control protocol.
type Registry struct {
	name    string
	version string
	mu      sync.RWMutex
	tools   map[string]*registeredTool
}

// registeredTool holds tool metadata and handler for the internal table.
type registeredTool struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewRegistry creates a tool registry with the given server identity.
func NewRegistry(name, version string) *Registry {
	return &Registry{
		name:    name,
		version: version,
		tools:   make(map[string]*registeredTool, 8),
	}
}

// Register adds a tool to the registry. Registering a name twice returns
// a DuplicateToolError and leaves the original registration intact.
func (r *Registry) Register(tool *mcp.Tool, handler mcp.ToolHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &DuplicateToolError{Name: tool.Name}
	}

	r.tools[tool.Name] = &registeredTool{
		tool:    tool,
		handler: handler,
	}

	return nil
}

// Name returns the server name.
func (r *Registry) Name() string {
	return r.name
}

// Version returns the server version.
func (r *Registry) Version() string {
	return r.version
}

// ServerInfo returns server information for the MCP initialize response.
func (r *Registry) ServerInfo() map[string]any {
	return map[string]any{
		"name":    r.name,
		"version": r.version,
	}
}

// Capabilities returns server capabilities for the MCP initialize response.
func (r *Registry) Capabilities() map[string]any {
	return map[string]any{
		"tools": map[string]any{},
	}
}

// ListTools returns metadata for all registered tools.
// The result format matches what the control protocol expects.
func (r *Registry) ListTools() []map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]map[string]any, 0, len(r.tools))
	for _, t := range r.tools {
		toolMap := map[string]any{
			"name":        t.tool.Name,
			"description": t.tool.Description,
		}

		// Convert InputSchema to map[string]any for the control protocol
		if t.tool.InputSchema != nil {
			schemaData, err := json.Marshal(t.tool.InputSchema)
			if err == nil {
				var schemaMap map[string]any
				if json.Unmarshal(schemaData, &schemaMap) == nil {
					toolMap["inputSchema"] = schemaMap
				}
			}
		}

		if t.tool.Annotations != nil {
			annotData, err := json.Marshal(t.tool.Annotations)
			if err == nil {
				var annotMap map[string]any
				if json.Unmarshal(annotData, &annotMap) == nil {
					toolMap["annotations"] = annotMap
				}
			}
		}

		result = append(result, toolMap)
	}

	return result
}

// Dispatch validates arguments against the tool's schema and invokes the
// handler.
//
// An unregistered name yields an UnknownToolError and a failed validation
// yields an InvalidArgumentsError, both before the handler runs. Handler
// panics are recovered and converted to errors.
func (r *Registry) Dispatch(
	ctx context.Context,
	name string,
	args map[string]any,
) (*mcp.CallToolResult, error) {
	r.mu.RLock()
	t, exists := r.tools[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &UnknownToolError{Name: name}
	}

	schema, _ := t.tool.InputSchema.(*jsonschema.Schema)
	if err := validateArguments(name, schema, args); err != nil {
		return nil, err
	}

	argBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argBytes,
		},
	}

	return r.invoke(ctx, t.handler, req)
}

// invoke runs a tool handler, converting panics into errors.
func (r *Registry) invoke(
	ctx context.Context,
	handler mcp.ToolHandler,
	req *mcp.CallToolRequest,
) (result *mcp.CallToolResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("tool panic: %v", rec)
		}
	}()

	return handler(ctx, req)
}

// CallTool executes a tool by name with the given input.
// The result format matches what the control protocol expects.
//
// Registry-level failures (unknown tool, invalid arguments) are returned
// as errors so the protocol layer can map them to JSON-RPC errors.
// Handler failures are encoded in the result with is_error set, matching
// MCP tool-call semantics.
func (r *Registry) CallTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	result, err := r.Dispatch(ctx, name, input)
	if err != nil {
		var unknownErr *UnknownToolError

		var invalidErr *InvalidArgumentsError

		if stderrors.As(err, &unknownErr) || stderrors.As(err, &invalidErr) {
			return nil, err
		}

		//nolint:nilerr // handler failures are encoded in the result
		return map[string]any{
			"content":  []map[string]any{{"type": "text", "text": "Tool execution failed: " + err.Error()}},
			"is_error": true,
		}, nil
	}

	return convertCallToolResultToMap(result), nil
}

// convertCallToolResultToMap converts an MCP CallToolResult to a map for
// the control protocol.
func convertCallToolResultToMap(result *mcp.CallToolResult) map[string]any {
	if result == nil {
		return map[string]any{
			"content": []map[string]any{},
		}
	}

	content := make([]map[string]any, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			content = append(content, map[string]any{
				"type": "text",
				"text": v.Text,
			})
		case *mcp.ImageContent:
			content = append(content, map[string]any{
				"type":     "image",
				"data":     v.Data,
				"mimeType": v.MIMEType,
			})
		case *mcp.AudioContent:
			content = append(content, map[string]any{
				"type":     "audio",
				"data":     v.Data,
				"mimeType": v.MIMEType,
			})
		case *mcp.ResourceLink:
			content = append(content, map[string]any{
				"type": "resource_link",
				"uri":  v.URI,
				"name": v.Name,
			})
		case *mcp.EmbeddedResource:
			if v.Resource != nil {
				content = append(content, map[string]any{
					"type": "resource",
					"resource": map[string]any{
						"uri":      v.Resource.URI,
						"mimeType": v.Resource.MIMEType,
						"text":     v.Resource.Text,
					},
				})
			}
		}
	}

	resultMap := map[string]any{
		"content": content,
	}

	if result.IsError {
		resultMap["is_error"] = true
	}

	return resultMap
}
