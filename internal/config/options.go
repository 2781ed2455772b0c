package config

import (
	"log/slog"
	"time"

	"github.com/wagiedev/agentwire/internal/hook"
	"github.com/wagiedev/agentwire/internal/mcp"
	"github.com/wagiedev/agentwire/internal/permission"
)

// Options configures the behavior of an agent session.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// SystemPrompt is the system message to send to the agent.
	SystemPrompt string

	// Model specifies which model the agent should use.
	Model string

	// PermissionMode controls how permissions are handled.
	// Valid values: "acceptEdits", "bypassPermissions", "default", "plan"
	// Legacy aliases are supported and normalized:
	// - "acceptAll" -> "bypassPermissions"
	// - "prompt" -> "default"
	PermissionMode string

	// MaxTurns limits the maximum number of conversation turns.
	MaxTurns int

	// Cwd sets the working directory for the agent process.
	Cwd string

	// CLIPath is the explicit path to the agent CLI binary.
	// If empty, the CLI will be searched in PATH.
	CLIPath string

	// Env provides additional environment variables for the agent process.
	Env map[string]string

	// Hooks configures event hooks for tool interception.
	Hooks map[hook.Event][]*hook.Matcher

	// MCPServers configures MCP servers by name.
	// Use this for programmatic configuration.
	MCPServers map[string]mcp.ServerConfig

	// MCPConfig is a path to an MCP config file (JSON or YAML) or a raw
	// JSON string. If set, this takes precedence over MCPServers.
	MCPConfig string

	// CanUseTool is called before each tool use for permission checking.
	// If nil, all tool uses are allowed.
	CanUseTool permission.Callback

	// AllowedTools is a list of pre-approved tools that can be used
	// without prompting.
	AllowedTools []string

	// DisallowedTools is a list of tools that are explicitly blocked.
	DisallowedTools []string

	// PermissionPromptToolName specifies the tool name to use for
	// permission prompts.
	PermissionPromptToolName string

	// ExtraArgs provides arbitrary CLI flags to pass to the agent process.
	// If the value is nil, the flag is passed without a value (boolean flag).
	ExtraArgs map[string]*string

	// MaxBufferSize sets the maximum bytes for stdout buffering.
	// If nil, uses default buffering.
	MaxBufferSize *int

	// Stderr is a callback function for handling stderr output.
	Stderr func(string)

	// ContinueConversation indicates whether to continue an existing
	// conversation.
	ContinueConversation bool

	// Resume is a session ID to resume from.
	Resume string

	// ForkSession indicates whether to fork the resumed session to a new ID.
	ForkSession bool

	// InitializeTimeout is the timeout for the initialize control request.
	// If nil, defaults to 60 seconds.
	InitializeTimeout *time.Duration

	// RequestTimeout is the default timeout for outbound control requests.
	// If nil, defaults to 60 seconds.
	RequestTimeout *time.Duration

	// Transport allows injecting a custom transport implementation.
	// If nil, the default CLITransport is created automatically.
	// This field is not serialized to JSON.
	Transport Transport `json:"-"`
}
