package protocol

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wagiedev/agentwire/internal/config"
	"github.com/wagiedev/agentwire/internal/hook"
	"github.com/wagiedev/agentwire/internal/mcp"
	"github.com/wagiedev/agentwire/internal/permission"
)

const (
	// defaultInitializeTimeout is the default timeout for initialize control requests.
	defaultInitializeTimeout = 60 * time.Second
)

// initializeTimeoutEnv overrides the initialize timeout (seconds).
const initializeTimeoutEnv = "AGENTWIRE_STREAM_CLOSE_TIMEOUT"

// Session encapsulates protocol handling logic for hooks, in-process MCP
// servers, and permission callbacks. It can be used by both Client and
// Query() to provide protocol support.
type Session struct {
	log        *slog.Logger
	controller *Controller
	options    *config.Options

	// Hook matcher storage (callback_id -> matcher). One callback ID is
	// registered per matcher; its hooks run locally in order.
	hookMatchersMu sync.RWMutex
	hookMatchers   map[string]*hook.Matcher

	// In-process MCP servers (keyed by server name)
	sdkMcpServers map[string]mcp.ServerInstance

	// Server initialization result (protected by initMu)
	initMu               sync.RWMutex
	initializationResult map[string]any
}

// NewSession creates a new Session for protocol handling.
func NewSession(
	log *slog.Logger,
	controller *Controller,
	options *config.Options,
) *Session {
	return &Session{
		log:           log.With("component", "session"),
		controller:    controller,
		options:       options,
		hookMatchers:  make(map[string]*hook.Matcher, 16),
		sdkMcpServers: make(map[string]mcp.ServerInstance, 4),
	}
}

// RegisterHandlers registers protocol handlers for hooks, MCP, and tool
// permissions. This must be called before Initialize().
func (s *Session) RegisterHandlers() {
	s.controller.RegisterHandler("hook_callback", s.HandleHookCallback)
	s.controller.RegisterHandler("mcp_message", s.HandleMCPMessage)
	s.controller.RegisterHandler("can_use_tool", s.HandleCanUseTool)
}

// RegisterMCPServers extracts and registers in-process MCP servers from options.
func (s *Session) RegisterMCPServers() {
	if s.options == nil || s.options.MCPServers == nil {
		return
	}

	for serverKey, serverConfig := range s.options.MCPServers {
		if serverConfig == nil {
			continue
		}

		if sdkConfig, ok := serverConfig.(*mcp.SdkServerConfig); ok {
			if sdkConfig.Instance != nil {
				if server, ok := sdkConfig.Instance.(mcp.ServerInstance); ok {
					s.sdkMcpServers[serverKey] = server
					s.log.Debug("Registered in-process MCP server", "server", serverKey)
				}
			}
		}
	}
}

// Initialize sends the initialization control request to the agent.
// It generates a callback ID for each hook matcher and stores the matcher
// for later lookup when hook_callback requests arrive.
func (s *Session) Initialize(ctx context.Context) error {
	s.log.Debug("Sending initialize request")

	hooksConfig := make(map[string]any, 8)

	if s.options != nil && s.options.Hooks != nil {
		s.hookMatchersMu.Lock()

		for event, matchers := range s.options.Hooks {
			eventMatchers := make([]map[string]any, 0, len(matchers))

			for _, m := range matchers {
				callbackID := uuid.NewString()
				s.hookMatchers[callbackID] = m

				matcherConfig := map[string]any{
					"matcher":         m.Matcher,
					"hookCallbackIds": []string{callbackID},
				}

				if m.Timeout != nil {
					matcherConfig["timeout"] = *m.Timeout
				}

				eventMatchers = append(eventMatchers, matcherConfig)
			}

			hooksConfig[string(event)] = eventMatchers
		}

		s.hookMatchersMu.Unlock()
	}

	payload := map[string]any{
		"hooks": hooksConfig,
	}

	timeout := s.getInitializeTimeout()

	resp, err := s.controller.SendRequest(ctx, "initialize", payload, timeout)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	s.initMu.Lock()
	s.initializationResult = resp.Payload()
	s.initMu.Unlock()

	return nil
}

// getInitializeTimeout returns the initialize timeout from options, env var, or default.
func (s *Session) getInitializeTimeout() time.Duration {
	if s.options != nil && s.options.InitializeTimeout != nil {
		return *s.options.InitializeTimeout
	}

	if timeoutStr := os.Getenv(initializeTimeoutEnv); timeoutStr != "" {
		if timeoutSec, err := strconv.Atoi(timeoutStr); err == nil && timeoutSec > 0 {
			return time.Duration(timeoutSec) * time.Second
		}
	}

	return defaultInitializeTimeout
}

// NeedsInitialization returns true if the session has callbacks that
// require the initialize handshake.
func (s *Session) NeedsInitialization() bool {
	if s.options == nil {
		return false
	}

	return len(s.options.Hooks) > 0 ||
		s.options.CanUseTool != nil ||
		len(s.sdkMcpServers) > 0
}

// GetInitializationResult returns a copy of the server initialization info.
// Returns nil if not initialized.
func (s *Session) GetInitializationResult() map[string]any {
	s.initMu.RLock()
	defer s.initMu.RUnlock()

	if s.initializationResult == nil {
		return nil
	}

	// Defensive copy to prevent caller mutation
	return maps.Clone(s.initializationResult)
}

// GetSDKMCPServerNames returns the names of all registered in-process MCP servers.
func (s *Session) GetSDKMCPServerNames() []string {
	names := make([]string, 0, len(s.sdkMcpServers))
	for name := range s.sdkMcpServers {
		names = append(names, name)
	}

	return names
}

// HandleHookCallback handles hook_callback control requests from the agent.
// The request's callback_id identifies a registered matcher; the matcher's
// hooks run sequentially in registration order and their outputs are
// aggregated, with the first "block" decision winning and short-circuiting
// the remaining hooks.
func (s *Session) HandleHookCallback(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.log.Debug("Handling hook callback")

	callbackID, _ := req.Request["callback_id"].(string)
	inputData, _ := req.Request["input"].(map[string]any)

	var toolUseID *string
	if toolUseIDStr, ok := req.Request["tool_use_id"].(string); ok && toolUseIDStr != "" {
		toolUseID = &toolUseIDStr
	}

	s.hookMatchersMu.RLock()
	matcher, exists := s.hookMatchers[callbackID]
	s.hookMatchersMu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown callback_id: %s", callbackID)
	}

	hookInput, err := s.parseHookInput(inputData)
	if err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}

	if matcher.Timeout != nil && *matcher.Timeout > 0 {
		var cancel context.CancelFunc

		timeout := time.Duration(*matcher.Timeout * float64(time.Second))
		ctx, cancel = context.WithTimeout(ctx, timeout)

		defer cancel()
	}

	output, err := s.runMatcherHooks(ctx, matcher, hookInput, toolUseID)
	if err != nil {
		return nil, fmt.Errorf("hook callback error: %w", err)
	}

	return s.convertHookOutput(output), nil
}

// runMatcherHooks executes a matcher's hooks in order, merging outputs.
// The first output carrying a "block" decision wins and stops the run.
func (s *Session) runMatcherHooks(
	ctx context.Context,
	matcher *hook.Matcher,
	input hook.Input,
	toolUseID *string,
) (*hook.Output, error) {
	hookCtx := &hook.Context{}

	var merged *hook.Output

	for _, hookFn := range matcher.Hooks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := hookFn(ctx, input, toolUseID, hookCtx)
		if err != nil {
			return nil, err
		}

		if output == nil {
			continue
		}

		merged = mergeHookOutputs(merged, output)

		if output.Blocks() {
			break
		}
	}

	return merged, nil
}

// mergeHookOutputs folds a later hook output into the accumulated one.
// Later non-nil fields win except Decision, where the first block sticks.
func mergeHookOutputs(acc, next *hook.Output) *hook.Output {
	if acc == nil {
		out := *next

		return &out
	}

	if next.Continue != nil {
		acc.Continue = next.Continue
	}

	if next.SuppressOutput != nil {
		acc.SuppressOutput = next.SuppressOutput
	}

	if next.StopReason != nil {
		acc.StopReason = next.StopReason
	}

	if next.Decision != nil && !acc.Blocks() {
		acc.Decision = next.Decision
	}

	if next.SystemMessage != nil {
		acc.SystemMessage = next.SystemMessage
	}

	if next.Reason != nil {
		acc.Reason = next.Reason
	}

	if next.HookSpecificOutput != nil {
		acc.HookSpecificOutput = next.HookSpecificOutput
	}

	return acc
}

// parseHookInput converts the input map to the appropriate hook.Input type.
func (s *Session) parseHookInput(inputData map[string]any) (hook.Input, error) {
	if inputData == nil {
		return nil, fmt.Errorf("input data is nil")
	}

	hookEventName, _ := inputData["hook_event_name"].(string)
	sessionID, _ := inputData["session_id"].(string)
	transcriptPath, _ := inputData["transcript_path"].(string)
	cwd, _ := inputData["cwd"].(string)

	var permissionMode *string
	if pm, ok := inputData["permission_mode"].(string); ok {
		permissionMode = &pm
	}

	baseInput := hook.BaseInput{
		SessionID:      sessionID,
		TranscriptPath: transcriptPath,
		Cwd:            cwd,
		PermissionMode: permissionMode,
	}

	switch hookEventName {
	case string(hook.EventPreToolUse):
		toolName, _ := inputData["tool_name"].(string)
		toolInput, _ := inputData["tool_input"].(map[string]any)
		toolUseID, _ := inputData["tool_use_id"].(string)

		return &hook.PreToolUseInput{
			BaseInput:     baseInput,
			HookEventName: hookEventName,
			ToolName:      toolName,
			ToolInput:     toolInput,
			ToolUseID:     toolUseID,
		}, nil

	case string(hook.EventPostToolUse):
		toolName, _ := inputData["tool_name"].(string)
		toolInput, _ := inputData["tool_input"].(map[string]any)
		toolUseID, _ := inputData["tool_use_id"].(string)
		toolResponse := inputData["tool_response"]

		return &hook.PostToolUseInput{
			BaseInput:     baseInput,
			HookEventName: hookEventName,
			ToolName:      toolName,
			ToolInput:     toolInput,
			ToolUseID:     toolUseID,
			ToolResponse:  toolResponse,
		}, nil

	case string(hook.EventUserPromptSubmit):
		prompt, _ := inputData["prompt"].(string)

		return &hook.UserPromptSubmitInput{
			BaseInput:     baseInput,
			HookEventName: hookEventName,
			Prompt:        prompt,
		}, nil

	case string(hook.EventStop):
		stopHookActive, _ := inputData["stop_hook_active"].(bool)

		return &hook.StopInput{
			BaseInput:      baseInput,
			HookEventName:  hookEventName,
			StopHookActive: stopHookActive,
		}, nil

	case string(hook.EventSubagentStop):
		stopHookActive, _ := inputData["stop_hook_active"].(bool)
		agentID, _ := inputData["agent_id"].(string)
		agentType, _ := inputData["agent_type"].(string)

		return &hook.SubagentStopInput{
			BaseInput:      baseInput,
			HookEventName:  hookEventName,
			StopHookActive: stopHookActive,
			AgentID:        agentID,
			AgentType:      agentType,
		}, nil

	case string(hook.EventPreCompact):
		trigger, _ := inputData["trigger"].(string)

		var customInstructions *string
		if ci, ok := inputData["custom_instructions"].(string); ok && ci != "" {
			customInstructions = &ci
		}

		return &hook.PreCompactInput{
			BaseInput:          baseInput,
			HookEventName:      hookEventName,
			Trigger:            trigger,
			CustomInstructions: customInstructions,
		}, nil

	case string(hook.EventNotification):
		msg, _ := inputData["message"].(string)
		notificationType, _ := inputData["notification_type"].(string)

		var title *string
		if t, ok := inputData["title"].(string); ok && t != "" {
			title = &t
		}

		return &hook.NotificationInput{
			BaseInput:        baseInput,
			HookEventName:    hookEventName,
			Message:          msg,
			Title:            title,
			NotificationType: notificationType,
		}, nil

	default:
		return nil, fmt.Errorf("unknown hook event: %q", hookEventName)
	}
}

// convertHookOutput converts a hook.Output to a response map for the agent.
func (s *Session) convertHookOutput(output *hook.Output) map[string]any {
	if output == nil {
		// Default: continue with no special output
		return map[string]any{
			"continue": true,
		}
	}

	result := make(map[string]any, 8)

	if output.Continue != nil {
		result["continue"] = *output.Continue
	} else {
		result["continue"] = true
	}

	if output.SuppressOutput != nil {
		result["suppressOutput"] = *output.SuppressOutput
	}

	if output.StopReason != nil {
		result["stopReason"] = *output.StopReason
	}

	if output.Decision != nil {
		result["decision"] = *output.Decision
	}

	if output.SystemMessage != nil {
		result["systemMessage"] = *output.SystemMessage
	}

	if output.Reason != nil {
		result["reason"] = *output.Reason
	}

	if output.HookSpecificOutput != nil {
		result["hookSpecificOutput"] = output.HookSpecificOutput
	}

	return result
}

// HandleMCPMessage handles unified mcp_message control requests from the
// agent. Routes based on the JSONRPC method field: initialize, tools/list,
// tools/call, notifications/initialized.
func (s *Session) HandleMCPMessage(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.log.Debug("Handling MCP message request")

	serverName, _ := req.Request["server_name"].(string)
	message, _ := req.Request["message"].(map[string]any)

	if message == nil {
		return nil, fmt.Errorf("missing message field in mcp_message request")
	}

	method, _ := message["method"].(string)
	params, _ := message["params"].(map[string]any)

	// Message ID can be a string or a number
	var msgID any
	if id, ok := message["id"].(float64); ok {
		msgID = int(id)
	} else if id, ok := message["id"].(string); ok {
		msgID = id
	} else {
		msgID = message["id"]
	}

	server, exists := s.sdkMcpServers[serverName]
	if !exists {
		return s.mcpErrorResponse(msgID, -32600, fmt.Sprintf("MCP server not found: %s", serverName)), nil
	}

	switch method {
	case "initialize":
		return s.handleMCPInitialize(msgID, server)

	case "notifications/initialized":
		// No-op acknowledgment
		return map[string]any{
			"mcp_response": map[string]any{
				"jsonrpc": "2.0",
				"id":      msgID,
				"result":  map[string]any{},
			},
		}, nil

	case "tools/list":
		return s.handleMCPToolsList(msgID, server)

	case "tools/call":
		return s.handleMCPToolsCall(ctx, msgID, params, server)

	default:
		return s.mcpErrorResponse(msgID, -32601, fmt.Sprintf("Method not found: %s", method)), nil
	}
}

// handleMCPInitialize handles the initialize method.
func (s *Session) handleMCPInitialize(
	msgID any,
	server mcp.ServerInstance,
) (map[string]any, error) {
	var serverInfo map[string]any

	var capabilities map[string]any

	if infoProvider, ok := server.(interface{ ServerInfo() map[string]any }); ok {
		serverInfo = infoProvider.ServerInfo()
	} else {
		serverInfo = map[string]any{
			"name":    server.Name(),
			"version": server.Version(),
		}
	}

	if capsProvider, ok := server.(interface{ Capabilities() map[string]any }); ok {
		capabilities = capsProvider.Capabilities()
	} else {
		capabilities = map[string]any{
			"tools": map[string]any{},
		}
	}

	return map[string]any{
		"mcp_response": map[string]any{
			"jsonrpc": "2.0",
			"id":      msgID,
			"result": map[string]any{
				"protocolVersion": "2024-11-05",
				"capabilities":    capabilities,
				"serverInfo":      serverInfo,
			},
		},
	}, nil
}

// handleMCPToolsList handles the tools/list method.
func (s *Session) handleMCPToolsList(
	msgID any,
	server mcp.ServerInstance,
) (map[string]any, error) {
	tools := server.ListTools()

	return map[string]any{
		"mcp_response": map[string]any{
			"jsonrpc": "2.0",
			"id":      msgID,
			"result": map[string]any{
				"tools": tools,
			},
		},
	}, nil
}

// handleMCPToolsCall handles the tools/call method.
func (s *Session) handleMCPToolsCall(
	ctx context.Context,
	msgID any,
	params map[string]any,
	server mcp.ServerInstance,
) (map[string]any, error) {
	if params == nil {
		return s.mcpErrorResponse(msgID, -32602, "Missing params for tools/call"), nil
	}

	toolName, _ := params["name"].(string)
	arguments, _ := params["arguments"].(map[string]any)

	if toolName == "" {
		return s.mcpErrorResponse(msgID, -32602, "Missing tool name in params"), nil
	}

	result, err := server.CallTool(ctx, toolName, arguments)
	if err != nil {
		return s.mcpErrorResponse(msgID, -32602, err.Error()), nil
	}

	return map[string]any{
		"mcp_response": map[string]any{
			"jsonrpc": "2.0",
			"id":      msgID,
			"result":  result,
		},
	}, nil
}

// mcpErrorResponse creates a JSONRPC error response.
func (s *Session) mcpErrorResponse(msgID any, code int, message string) map[string]any {
	return map[string]any{
		"mcp_response": map[string]any{
			"jsonrpc": "2.0",
			"id":      msgID,
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
	}
}

// HandleCanUseTool handles can_use_tool permission checks from the agent.
// With no callback configured the tool use is allowed.
func (s *Session) HandleCanUseTool(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.options == nil || s.options.CanUseTool == nil {
		return map[string]any{"behavior": "allow"}, nil
	}

	toolName, _ := req.Request["tool_name"].(string)
	input, _ := req.Request["input"].(map[string]any)

	var suggestions []*permission.Update
	if suggestionsData, ok := req.Request["suggestions"].([]any); ok {
		suggestions = make([]*permission.Update, 0, len(suggestionsData))

		for _, sg := range suggestionsData {
			if suggestionMap, ok := sg.(map[string]any); ok {
				suggestions = append(suggestions, permission.UpdateFromDict(suggestionMap))
			}
		}
	}

	permCtx := &permission.Context{
		Suggestions: suggestions,
	}

	if toolUseIDStr, ok := req.Request["tool_use_id"].(string); ok && toolUseIDStr != "" {
		permCtx.ToolUseID = &toolUseIDStr
	}

	decision, err := s.options.CanUseTool(ctx, toolName, input, permCtx)
	if err != nil {
		return nil, err
	}

	switch d := decision.(type) {
	case *permission.ResultAllow:
		result := map[string]any{"behavior": "allow"}

		if d.UpdatedInput != nil {
			result["updatedInput"] = d.UpdatedInput
		}

		if d.UpdatedPermissions != nil {
			updates := make([]map[string]any, len(d.UpdatedPermissions))
			for i, u := range d.UpdatedPermissions {
				updates[i] = u.ToDict()
			}

			result["updatedPermissions"] = updates
		}

		return result, nil

	case *permission.ResultDeny:
		result := map[string]any{
			"behavior": "deny",
			"message":  d.Message,
		}

		if d.Interrupt {
			result["interrupt"] = true
		}

		return result, nil

	default:
		return nil, fmt.Errorf(
			"tool permission callback must return *ResultAllow or *ResultDeny, got %T",
			decision,
		)
	}
}
