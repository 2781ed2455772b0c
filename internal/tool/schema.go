package tool

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"a": "float64", "b": "string"}
// All listed properties are required. This is a convenience function for
// creating schemas without the full jsonschema.Schema API.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			itemType := goType[2:]

			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(itemType),
			}
		}

		// Default to string
		return &jsonschema.Schema{Type: "string"}
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// ImageResult creates a CallToolResult with image content.
func ImageResult(data []byte, mimeType string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.ImageContent{Data: data, MIMEType: mimeType},
		},
	}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil {
		return make(map[string]any), nil
	}

	if len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}

// validateArguments checks arguments against a schema's required list and
// declared property types. Only shallow structural checks are performed;
// nested schemas and advanced keywords are left to the handler.
func validateArguments(toolName string, schema *jsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	verr := &InvalidArgumentsError{Tool: toolName}

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			verr.Missing = append(verr.Missing, name)
		}
	}

	for name, propSchema := range schema.Properties {
		value, ok := args[name]
		if !ok || propSchema == nil || propSchema.Type == "" {
			continue
		}

		if !matchesJSONType(propSchema.Type, value) {
			verr.Mismatched = append(verr.Mismatched, name)
		}
	}

	if len(verr.Missing) > 0 || len(verr.Mismatched) > 0 {
		return verr
	}

	return nil
}

// matchesJSONType reports whether a decoded JSON value satisfies a JSON
// Schema primitive type. Decoded JSON numbers arrive as float64, so
// "integer" additionally requires a whole value.
func matchesJSONType(schemaType string, value any) bool {
	switch schemaType {
	case "string":
		_, ok := value.(string)

		return ok
	case "number":
		_, ok := value.(float64)

		return ok
	case "integer":
		f, ok := value.(float64)

		return ok && f == float64(int64(f))
	case "boolean":
		_, ok := value.(bool)

		return ok
	case "object":
		_, ok := value.(map[string]any)

		return ok
	case "array":
		_, ok := value.([]any)

		return ok
	case "null":
		return value == nil
	default:
		return true
	}
}
