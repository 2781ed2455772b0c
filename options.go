package agentwire

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring AgentOptions.
type Option func(*AgentOptions)

// applyAgentOptions builds an AgentOptions from functional options.
func applyAgentOptions(opts []Option) *AgentOptions {
	options := &AgentOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithLogger sets the slog logger for debug output.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *AgentOptions) {
		o.Logger = logger
	}
}

// WithSystemPrompt sets the system message to send to the agent.
func WithSystemPrompt(prompt string) Option {
	return func(o *AgentOptions) {
		o.SystemPrompt = prompt
	}
}

// WithModel specifies which model the agent should use.
func WithModel(model string) Option {
	return func(o *AgentOptions) {
		o.Model = model
	}
}

// WithPermissionMode controls how permissions are handled.
// Valid values: "acceptEdits", "bypassPermissions", "default", "plan".
// Legacy aliases "acceptAll" and "prompt" are normalized.
func WithPermissionMode(mode PermissionMode) Option {
	return func(o *AgentOptions) {
		o.PermissionMode = string(mode)
	}
}

// WithMaxTurns limits the maximum number of conversation turns.
func WithMaxTurns(turns int) Option {
	return func(o *AgentOptions) {
		o.MaxTurns = turns
	}
}

// WithCwd sets the working directory for the agent process.
func WithCwd(cwd string) Option {
	return func(o *AgentOptions) {
		o.Cwd = cwd
	}
}

// WithCLIPath sets an explicit path to the agent CLI binary,
// bypassing PATH discovery.
func WithCLIPath(path string) Option {
	return func(o *AgentOptions) {
		o.CLIPath = path
	}
}

// WithEnv provides additional environment variables for the agent process.
func WithEnv(env map[string]string) Option {
	return func(o *AgentOptions) {
		o.Env = env
	}
}

// WithHooks configures event hooks for tool interception.
func WithHooks(hooks map[HookEvent][]*HookMatcher) Option {
	return func(o *AgentOptions) {
		o.Hooks = hooks
	}
}

// WithMCPServers configures MCP servers by name.
func WithMCPServers(servers map[string]MCPServerConfig) Option {
	return func(o *AgentOptions) {
		o.MCPServers = servers
	}
}

// WithMCPConfig sets a path to an MCP config file (JSON or YAML) or a
// raw JSON string. Takes precedence over WithMCPServers.
func WithMCPConfig(config string) Option {
	return func(o *AgentOptions) {
		o.MCPConfig = config
	}
}

// WithCanUseTool sets a callback invoked before each tool use for
// permission checking. Requires streaming mode and cannot be combined
// with WithPermissionPromptToolName.
func WithCanUseTool(callback ToolPermissionCallback) Option {
	return func(o *AgentOptions) {
		o.CanUseTool = callback
	}
}

// WithAllowedTools sets a list of pre-approved tools that can be used
// without prompting.
func WithAllowedTools(tools ...string) Option {
	return func(o *AgentOptions) {
		o.AllowedTools = tools
	}
}

// WithDisallowedTools sets a list of tools that are explicitly blocked.
func WithDisallowedTools(tools ...string) Option {
	return func(o *AgentOptions) {
		o.DisallowedTools = tools
	}
}

// WithPermissionPromptToolName specifies the tool name to use for
// permission prompts.
func WithPermissionPromptToolName(name string) Option {
	return func(o *AgentOptions) {
		o.PermissionPromptToolName = name
	}
}

// WithExtraArgs passes arbitrary CLI flags to the agent process.
// A nil value passes the flag without a value (boolean flag).
func WithExtraArgs(args map[string]*string) Option {
	return func(o *AgentOptions) {
		o.ExtraArgs = args
	}
}

// WithMaxBufferSize sets the maximum bytes for stdout buffering.
func WithMaxBufferSize(size int) Option {
	return func(o *AgentOptions) {
		o.MaxBufferSize = &size
	}
}

// WithStderr sets a callback function for handling stderr output
// from the agent process.
func WithStderr(fn func(string)) Option {
	return func(o *AgentOptions) {
		o.Stderr = fn
	}
}

// WithContinueConversation continues the most recent conversation.
func WithContinueConversation() Option {
	return func(o *AgentOptions) {
		o.ContinueConversation = true
	}
}

// WithResume resumes a conversation from a session ID.
func WithResume(sessionID string) Option {
	return func(o *AgentOptions) {
		o.Resume = sessionID
	}
}

// WithForkSession forks a resumed session to a new session ID instead
// of continuing under the original ID. Only meaningful with WithResume.
func WithForkSession() Option {
	return func(o *AgentOptions) {
		o.ForkSession = true
	}
}

// WithInitializeTimeout sets the timeout for the initialize control
// request. Defaults to 60 seconds.
func WithInitializeTimeout(timeout time.Duration) Option {
	return func(o *AgentOptions) {
		o.InitializeTimeout = &timeout
	}
}

// WithRequestTimeout sets the default timeout for outbound control
// requests such as Interrupt and SetModel. Defaults to 60 seconds.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *AgentOptions) {
		o.RequestTimeout = &timeout
	}
}

// WithTransport injects a custom transport implementation, replacing
// the default subprocess transport. Intended for testing.
func WithTransport(transport Transport) Option {
	return func(o *AgentOptions) {
		o.Transport = transport
	}
}
