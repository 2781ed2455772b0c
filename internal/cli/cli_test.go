package cli

import (
	"encoding/json"
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/agentwire/internal/config"
	"github.com/wagiedev/agentwire/internal/errors"
	"github.com/wagiedev/agentwire/internal/mcp"
)

const flagMCPConfig = "--mcp-config"

// TestDiscoverer_NotFound tests that an invalid CLI path returns CLINotFoundError.
func TestDiscoverer_NotFound(t *testing.T) {
	discoverer := NewDiscoverer(&Config{
		CLIPath:          "/nonexistent/path/to/agent",
		SkipVersionCheck: true,
		Logger:           slog.Default(),
	})

	_, err := discoverer.Discover(t.Context())

	require.Error(t, err)
	require.IsType(t, &errors.CLINotFoundError{}, err)
}

// TestDiscoverer_ExplicitPath tests discovery with an explicit path.
func TestDiscoverer_ExplicitPath(t *testing.T) {
	// Create a temp file to act as the CLI
	tmpDir := t.TempDir()
	fakeCLI := tmpDir + "/agent"

	// Create the fake CLI file
	err := os.WriteFile(fakeCLI, []byte("#!/bin/sh\necho 1.2.0"), 0o755)
	require.NoError(t, err)

	discoverer := NewDiscoverer(&Config{
		CLIPath:          fakeCLI,
		SkipVersionCheck: true,
		Logger:           slog.Default(),
	})

	path, err := discoverer.Discover(t.Context())

	require.NoError(t, err)
	require.Equal(t, fakeCLI, path)
}

// TestDiscoverer_NilConfig tests that a nil config gets defaults.
func TestDiscoverer_NilConfig(t *testing.T) {
	discoverer := NewDiscoverer(nil)
	require.NotNil(t, discoverer)
}

// TestCompareVersions tests semantic version comparison.
func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"0.9.9", "1.0.0", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.10.0", "1.9.0", 1},
		{"2.0.0", "1.99.99", 1},
		{"1.0", "1.0.0", 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, compareVersions(tt.a, tt.b), "compareVersions(%q, %q)", tt.a, tt.b)
	}
}

// TestBuildArgs_Basic tests basic command building with minimal options.
func TestBuildArgs_Basic(t *testing.T) {
	options := &config.Options{}
	args, err := BuildArgs("hello", options, false)
	require.NoError(t, err)

	require.Contains(t, args, "--output-format")
	require.Contains(t, args, "stream-json")
	require.Contains(t, args, "--verbose")
	require.Contains(t, args, "--print")
	require.Contains(t, args, "--")
	require.Contains(t, args, "hello")
}

// TestBuildArgs_WithOptions tests command building with various options.
func TestBuildArgs_WithOptions(t *testing.T) {
	options := &config.Options{
		PermissionMode: "acceptAll",
		MaxTurns:       5,
		Model:          "fast-1",
		SystemPrompt:   "You are helpful",
	}

	args, err := BuildArgs("test", options, false)
	require.NoError(t, err)

	require.Contains(t, args, "--permission-mode")
	require.Contains(t, args, "bypassPermissions")
	require.Contains(t, args, "--max-turns")
	require.Contains(t, args, "5")
	require.Contains(t, args, "--model")
	require.Contains(t, args, "fast-1")
	require.Contains(t, args, "--system-prompt")
	require.Contains(t, args, "You are helpful")
}

// TestBuildArgs_Streaming tests streaming mode argument construction.
func TestBuildArgs_Streaming(t *testing.T) {
	options := &config.Options{}
	args, err := BuildArgs("ignored", options, true)
	require.NoError(t, err)

	require.Contains(t, args, "--input-format")
	require.Contains(t, args, "stream-json")
	require.NotContains(t, args, "--print")
	require.NotContains(t, args, "ignored")
}

// TestBuildArgs_ToolLists tests allowed and disallowed tool flags.
func TestBuildArgs_ToolLists(t *testing.T) {
	options := &config.Options{
		AllowedTools:    []string{"Read", "Grep"},
		DisallowedTools: []string{"Bash"},
	}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	require.Contains(t, args, "--allowed-tools")
	require.Contains(t, args, "Read,Grep")
	require.Contains(t, args, "--disallowed-tools")
	require.Contains(t, args, "Bash")
}

// TestBuildArgs_SessionFlags tests continue, resume, and fork flags.
func TestBuildArgs_SessionFlags(t *testing.T) {
	options := &config.Options{
		ContinueConversation: true,
		Resume:               "session-123",
		ForkSession:          true,
	}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	require.Contains(t, args, "--continue")
	require.Contains(t, args, "--resume")
	require.Contains(t, args, "session-123")
	require.Contains(t, args, "--fork-session")
}

// TestBuildArgs_ExtraArgs tests arbitrary flag passthrough.
func TestBuildArgs_ExtraArgs(t *testing.T) {
	value := "42"
	options := &config.Options{
		ExtraArgs: map[string]*string{
			"debug":       nil,
			"max-workers": &value,
		},
	}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	require.Contains(t, args, "--debug")
	require.Contains(t, args, "--max-workers")
	require.Contains(t, args, "42")
}

// TestBuildArgs_MCPConfigString tests that a non-YAML MCP config value is
// passed through unchanged.
func TestBuildArgs_MCPConfigString(t *testing.T) {
	options := &config.Options{
		MCPConfig: "/etc/agent/mcp.json",
		MCPServers: map[string]mcp.ServerConfig{
			"ignored": &mcp.StdioServerConfig{Command: "echo"},
		},
	}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	idx := slices.Index(args, flagMCPConfig)
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, "/etc/agent/mcp.json", args[idx+1])

	// MCPConfig takes precedence, so the programmatic servers are not serialized
	lastIdx := -1
	for i, arg := range args {
		if arg == flagMCPConfig {
			lastIdx = i
		}
	}
	require.Equal(t, idx, lastIdx)
}

// TestBuildArgs_MCPConfigYAMLFile tests that a YAML config file is loaded
// and converted to JSON for the CLI.
func TestBuildArgs_MCPConfigYAMLFile(t *testing.T) {
	configPath := t.TempDir() + "/mcp.yaml"
	yamlDoc := `mcpServers:
  files:
    command: mcp-files
    args:
      - --root
      - /tmp
  remote:
    type: sse
    url: https://example.com/mcp
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlDoc), 0o644))

	options := &config.Options{MCPConfig: configPath}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	idx := slices.Index(args, flagMCPConfig)
	require.GreaterOrEqual(t, idx, 0)

	var parsed struct {
		MCPServers map[string]map[string]any `json:"mcpServers"`
	}

	require.NoError(t, json.Unmarshal([]byte(args[idx+1]), &parsed))
	require.Len(t, parsed.MCPServers, 2)
	require.Equal(t, "mcp-files", parsed.MCPServers["files"]["command"])
	require.Equal(t, "sse", parsed.MCPServers["remote"]["type"])
	require.Equal(t, "https://example.com/mcp", parsed.MCPServers["remote"]["url"])
}

// TestBuildArgs_MCPConfigYAMLFileMissing tests that an unreadable YAML
// config file fails argument construction.
func TestBuildArgs_MCPConfigYAMLFileMissing(t *testing.T) {
	options := &config.Options{
		MCPConfig: t.TempDir() + "/missing.yml",
	}

	_, err := BuildArgs("test", options, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "load MCP config")
}

// TestBuildArgs_MCPServers tests programmatic MCP server serialization.
func TestBuildArgs_MCPServers(t *testing.T) {
	options := &config.Options{
		MCPServers: map[string]mcp.ServerConfig{
			"files": &mcp.StdioServerConfig{
				Command: "mcp-files",
				Args:    []string{"--root", "/tmp"},
			},
			"calc": &mcp.SdkServerConfig{
				Type: mcp.ServerTypeSDK,
				Name: "calc",
			},
		},
	}

	args, err := BuildArgs("test", options, true)
	require.NoError(t, err)

	idx := slices.Index(args, flagMCPConfig)
	require.GreaterOrEqual(t, idx, 0)

	var parsed struct {
		MCPServers map[string]map[string]any `json:"mcpServers"`
	}

	require.NoError(t, json.Unmarshal([]byte(args[idx+1]), &parsed))
	require.Len(t, parsed.MCPServers, 2)
	require.Equal(t, "mcp-files", parsed.MCPServers["files"]["command"])
	require.Equal(t, "sdk", parsed.MCPServers["calc"]["type"])

	// The in-process instance must never leak into the serialized config
	require.NotContains(t, parsed.MCPServers["calc"], "instance")
}

// TestBuildEnvironment tests environment construction.
func TestBuildEnvironment(t *testing.T) {
	options := &config.Options{
		Env: map[string]string{
			"AGENT_API_KEY": "secret",
		},
	}

	env := BuildEnvironment(options)

	require.Contains(t, env, "AGENTWIRE_SDK_VERSION=0.1.0")
	require.Contains(t, env, "AGENTWIRE_ENTRYPOINT=sdk-go")
	require.Contains(t, env, "AGENT_API_KEY=secret")
}
