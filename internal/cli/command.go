package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wagiedev/agentwire/internal/config"
	"github.com/wagiedev/agentwire/internal/mcp"
)

// Command represents the CLI command to execute.
type Command struct {
	// Args are the command line arguments.
	Args []string

	// Env are the environment variables.
	Env []string
}

// BuildArgs constructs the CLI command arguments.
//
// When isStreaming is true, uses --input-format stream-json and omits the prompt
// from command line arguments (prompt comes via stdin instead).
//
// Returns an error if a YAML MCP config file cannot be loaded.
func BuildArgs(
	prompt string,
	options *config.Options,
	isStreaming bool,
) ([]string, error) {
	// Start with output format and verbose
	args := []string{
		"--output-format", "stream-json",
		"--verbose",
	}

	// Add optional configuration flags
	if options.PermissionMode != "" {
		args = append(args, "--permission-mode", config.NormalizePermissionMode(options.PermissionMode))
	}

	if options.MaxTurns > 0 {
		args = append(args, "--max-turns", strconv.Itoa(options.MaxTurns))
	}

	if options.Model != "" {
		args = append(args, "--model", options.Model)
	}

	// System prompt - always set this flag (empty string when not provided)
	args = append(args, "--system-prompt", options.SystemPrompt)

	// MCP configuration via --mcp-config flag.
	// MCPConfig takes precedence over MCPServers. YAML config files are
	// loaded and converted here because the CLI only accepts JSON.
	if options.MCPConfig != "" {
		mcpConfig := options.MCPConfig

		switch filepath.Ext(mcpConfig) {
		case ".yaml", ".yml":
			servers, err := mcp.LoadConfig(mcpConfig)
			if err != nil {
				return nil, fmt.Errorf("load MCP config: %w", err)
			}

			mcpConfig = marshalMCPServers(servers)
		}

		args = append(args, "--mcp-config", mcpConfig)
	}

	if options.MCPConfig == "" && len(options.MCPServers) > 0 {
		if configJSON := marshalMCPServers(options.MCPServers); configJSON != "" {
			args = append(args, "--mcp-config", configJSON)
		}
	}

	// AllowedTools - pre-approve tools to skip permission prompts
	if len(options.AllowedTools) > 0 {
		args = append(args, "--allowed-tools", strings.Join(options.AllowedTools, ","))
	}

	// DisallowedTools - block specific tools
	if len(options.DisallowedTools) > 0 {
		args = append(args, "--disallowed-tools", strings.Join(options.DisallowedTools, ","))
	}

	// Permission prompt tool name
	if options.PermissionPromptToolName != "" {
		args = append(args, "--permission-prompt-tool", options.PermissionPromptToolName)
	}

	// Continue conversation
	if options.ContinueConversation {
		args = append(args, "--continue")
	}

	// Resume session
	if options.Resume != "" {
		args = append(args, "--resume", options.Resume)
	}

	// Fork session
	if options.ForkSession {
		args = append(args, "--fork-session")
	}

	// Extra args (arbitrary CLI flags)
	for key, value := range options.ExtraArgs {
		if value == nil {
			// Boolean flag without value
			args = append(args, "--"+key)
		} else {
			// Flag with value
			args = append(args, "--"+key, *value)
		}
	}

	// Handle prompt based on mode
	if isStreaming {
		// Streaming mode: use --input-format stream-json, prompt comes via stdin
		args = append(args, "--input-format", "stream-json")
	} else {
		// One-shot mode: use --print with the prompt after --
		args = append(args, "--print", "--", prompt)
	}

	return args, nil
}

// marshalMCPServers builds the --mcp-config JSON value from programmatic
// server configuration. SDK server instances are serialized by name and type
// only; the instance itself stays in-process.
func marshalMCPServers(servers map[string]mcp.ServerConfig) string {
	wrapper := map[string]any{"mcpServers": servers}

	configJSON, err := json.Marshal(wrapper)
	if err != nil {
		return ""
	}

	return string(configJSON)
}

// BuildEnvironment constructs the environment variables for the CLI process.
func BuildEnvironment(options *config.Options) []string {
	// Start with current environment
	env := os.Environ()

	// Add SDK-specific environment variables
	env = append(env, "AGENTWIRE_SDK_VERSION=0.1.0")
	env = append(env, "AGENTWIRE_ENTRYPOINT=sdk-go")

	// Add or override with user-provided environment variables
	for key, value := range options.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}
