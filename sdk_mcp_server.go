package agentwire

import (
	"github.com/wagiedev/agentwire/internal/tool"
)

// CreateSdkMcpServer creates an in-process MCP server configuration with SdkMcpTool tools.
//
// This function creates an MCP server
// that runs within your application, providing better performance than external MCP servers.
//
// Registration fails with a DuplicateToolError if two tools share a name.
//
// The returned config can be used directly in AgentOptions.MCPServers:
//
//	addTool := agentwire.NewSdkMcpTool("add", "Add two numbers",
//	    agentwire.SimpleSchema(map[string]string{"a": "float64", "b": "float64"}),
//	    func(ctx context.Context, req *agentwire.CallToolRequest) (*agentwire.CallToolResult, error) {
//	        args, _ := agentwire.ParseArguments(req)
//	        a, b := args["a"].(float64), args["b"].(float64)
//	        return agentwire.TextResult(fmt.Sprintf("Result: %v", a+b)), nil
//	    },
//	)
//
//	calculator, err := agentwire.CreateSdkMcpServer("calculator", "1.0.0", addTool)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	options := []agentwire.Option{
//	    agentwire.WithMCPServers(map[string]agentwire.MCPServerConfig{
//	        "calculator": calculator,
//	    }),
//	    agentwire.WithAllowedTools("mcp__calculator__add"),
//	}
//
// Parameters:
//   - name: Server name (also used as key in MCPServers map, determines tool naming: mcp__<name>__<toolName>)
//   - version: Server version string
//   - tools: SdkMcpTool instances to register with the server
func CreateSdkMcpServer(name, version string, tools ...*SdkMcpTool) (*MCPSdkServerConfig, error) {
	registry := tool.NewRegistry(name, version)

	for _, t := range tools {
		mcpTool := tool.NewTool(t.ToolName, t.ToolDescription, t.ToolSchema)
		mcpTool.Annotations = t.ToolAnnotations

		if err := registry.Register(mcpTool, t.ToolHandler); err != nil {
			return nil, err
		}
	}

	return &MCPSdkServerConfig{
		Type:     MCPServerTypeSDK,
		Name:     name,
		Instance: registry,
	}, nil
}
