// Package hook provides hook types for intercepting agent events.
package hook

import (
	"context"
	"strings"
)

// Event represents the type of event that triggers a hook.
type Event string

const (
	// EventPreToolUse is triggered before a tool is used.
	EventPreToolUse Event = "PreToolUse"
	// EventPostToolUse is triggered after a tool is used.
	EventPostToolUse Event = "PostToolUse"
	// EventUserPromptSubmit is triggered when a user submits a prompt.
	EventUserPromptSubmit Event = "UserPromptSubmit"
	// EventStop is triggered when a session stops.
	EventStop Event = "Stop"
	// EventSubagentStop is triggered when a subagent stops.
	EventSubagentStop Event = "SubagentStop"
	// EventPreCompact is triggered before conversation compaction.
	EventPreCompact Event = "PreCompact"
	// EventNotification is triggered when a notification is sent.
	EventNotification Event = "Notification"
)

// Input is the interface for all hook input types.
type Input interface {
	GetHookEventName() Event
	GetSessionID() string
	GetTranscriptPath() string
	GetCwd() string
	GetPermissionMode() *string
}

// Compile-time verification that all hook input types implement Input.
var (
	_ Input = (*PreToolUseInput)(nil)
	_ Input = (*PostToolUseInput)(nil)
	_ Input = (*UserPromptSubmitInput)(nil)
	_ Input = (*StopInput)(nil)
	_ Input = (*SubagentStopInput)(nil)
	_ Input = (*PreCompactInput)(nil)
	_ Input = (*NotificationInput)(nil)
)

// BaseInput contains common fields for all hook inputs.
//
//nolint:tagliatelle // wire protocol uses snake_case
type BaseInput struct {
	SessionID      string  `json:"session_id"`
	TranscriptPath string  `json:"transcript_path"`
	Cwd            string  `json:"cwd"`
	PermissionMode *string `json:"permission_mode,omitempty"`
}

// GetSessionID implements Input.
func (b *BaseInput) GetSessionID() string { return b.SessionID }

// GetTranscriptPath implements Input.
func (b *BaseInput) GetTranscriptPath() string { return b.TranscriptPath }

// GetCwd implements Input.
func (b *BaseInput) GetCwd() string { return b.Cwd }

// GetPermissionMode implements Input.
func (b *BaseInput) GetPermissionMode() *string { return b.PermissionMode }

// PreToolUseInput is the input for PreToolUse hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type PreToolUseInput struct {
	BaseInput
	HookEventName string         `json:"hook_event_name"`
	ToolName      string         `json:"tool_name"`
	ToolInput     map[string]any `json:"tool_input"`
	ToolUseID     string         `json:"tool_use_id"`
}

// GetHookEventName implements Input.
func (p *PreToolUseInput) GetHookEventName() Event { return EventPreToolUse }

// PostToolUseInput is the input for PostToolUse hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type PostToolUseInput struct {
	BaseInput
	HookEventName string         `json:"hook_event_name"`
	ToolName      string         `json:"tool_name"`
	ToolInput     map[string]any `json:"tool_input"`
	ToolUseID     string         `json:"tool_use_id"`
	ToolResponse  any            `json:"tool_response"`
}

// GetHookEventName implements Input.
func (p *PostToolUseInput) GetHookEventName() Event { return EventPostToolUse }

// UserPromptSubmitInput is the input for UserPromptSubmit hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type UserPromptSubmitInput struct {
	BaseInput
	HookEventName string `json:"hook_event_name"`
	Prompt        string `json:"prompt"`
}

// GetHookEventName implements Input.
func (u *UserPromptSubmitInput) GetHookEventName() Event {
	return EventUserPromptSubmit
}

// StopInput is the input for Stop hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type StopInput struct {
	BaseInput
	HookEventName  string `json:"hook_event_name"`
	StopHookActive bool   `json:"stop_hook_active"`
}

// GetHookEventName implements Input.
func (s *StopInput) GetHookEventName() Event { return EventStop }

// SubagentStopInput is the input for SubagentStop hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type SubagentStopInput struct {
	BaseInput
	HookEventName  string `json:"hook_event_name"`
	StopHookActive bool   `json:"stop_hook_active"`
	AgentID        string `json:"agent_id"`
	AgentType      string `json:"agent_type"`
}

// GetHookEventName implements Input.
func (s *SubagentStopInput) GetHookEventName() Event { return EventSubagentStop }

// PreCompactInput is the input for PreCompact hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type PreCompactInput struct {
	BaseInput
	HookEventName      string  `json:"hook_event_name"`
	Trigger            string  `json:"trigger"` // "manual" or "auto"
	CustomInstructions *string `json:"custom_instructions,omitempty"`
}

// GetHookEventName implements Input.
func (p *PreCompactInput) GetHookEventName() Event { return EventPreCompact }

// NotificationInput is the input for Notification hooks.
//
//nolint:tagliatelle // wire protocol uses snake_case
type NotificationInput struct {
	BaseInput
	HookEventName    string  `json:"hook_event_name"`
	Message          string  `json:"message"`
	Title            *string `json:"title,omitempty"`
	NotificationType string  `json:"notification_type"`
}

// GetHookEventName implements Input.
func (n *NotificationInput) GetHookEventName() Event { return EventNotification }

// Output represents a hook callback result.
type Output struct {
	// Continue, when set to false, asks the agent to stop processing.
	Continue *bool `json:"continue,omitempty"`
	// SuppressOutput hides hook output from the transcript.
	SuppressOutput *bool `json:"suppressOutput,omitempty"`
	// StopReason explains why processing should stop.
	StopReason *string `json:"stopReason,omitempty"`
	// Decision is "block" to block the triggering action.
	Decision *string `json:"decision,omitempty"`
	// SystemMessage injects a message visible to the agent.
	SystemMessage *string `json:"systemMessage,omitempty"`
	// Reason explains a block decision.
	Reason *string `json:"reason,omitempty"`
	// HookSpecificOutput carries event-specific fields.
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput,omitempty"`
}

// Blocks reports whether the output carries a "block" decision.
func (o *Output) Blocks() bool {
	return o != nil && o.Decision != nil && *o.Decision == "block"
}

// SpecificOutput is the interface for hook-specific outputs.
type SpecificOutput interface {
	GetHookEventName() string
}

// Compile-time verification that hook-specific output types implement SpecificOutput.
var (
	_ SpecificOutput = (*PreToolUseSpecificOutput)(nil)
	_ SpecificOutput = (*PostToolUseSpecificOutput)(nil)
	_ SpecificOutput = (*UserPromptSubmitSpecificOutput)(nil)
)

// PreToolUseSpecificOutput is the hook-specific output for PreToolUse.
type PreToolUseSpecificOutput struct {
	HookEventName            string         `json:"hookEventName"` // "PreToolUse"
	PermissionDecision       *string        `json:"permissionDecision,omitempty"`
	PermissionDecisionReason *string        `json:"permissionDecisionReason,omitempty"`
	UpdatedInput             map[string]any `json:"updatedInput,omitempty"`
	AdditionalContext        *string        `json:"additionalContext,omitempty"`
}

// GetHookEventName implements SpecificOutput.
func (p *PreToolUseSpecificOutput) GetHookEventName() string { return "PreToolUse" }

// PostToolUseSpecificOutput is the hook-specific output for PostToolUse.
type PostToolUseSpecificOutput struct {
	HookEventName     string  `json:"hookEventName"` // "PostToolUse"
	AdditionalContext *string `json:"additionalContext,omitempty"`
}

// GetHookEventName implements SpecificOutput.
func (p *PostToolUseSpecificOutput) GetHookEventName() string { return "PostToolUse" }

// UserPromptSubmitSpecificOutput is the hook-specific output for UserPromptSubmit.
type UserPromptSubmitSpecificOutput struct {
	HookEventName     string  `json:"hookEventName"` // "UserPromptSubmit"
	AdditionalContext *string `json:"additionalContext,omitempty"`
}

// GetHookEventName implements SpecificOutput.
func (u *UserPromptSubmitSpecificOutput) GetHookEventName() string {
	return "UserPromptSubmit"
}

// Context provides context for hook execution.
type Context struct{}

// Callback is the function signature for hook callbacks.
type Callback func(
	ctx context.Context,
	input Input,
	toolUseID *string,
	hookCtx *Context,
) (*Output, error)

// Matcher configures which tools/events a hook applies to.
type Matcher struct {
	// Matcher is a tool name like "Bash" or a pipe-separated combination
	// like "Write|Edit". When nil, the hook matches all tools/events.
	// This is NOT regex - pipe (|) separates multiple tool names to match.
	Matcher *string
	Hooks   []Callback
	Timeout *float64 // seconds (default 60)
}

// Matches reports whether this matcher applies to the given tool name.
// A nil matcher pattern matches everything, including events that carry
// no tool name.
func (m *Matcher) Matches(toolName string) bool {
	if m.Matcher == nil || *m.Matcher == "" {
		return true
	}
	for _, name := range strings.Split(*m.Matcher, "|") {
		if strings.TrimSpace(name) == toolName {
			return true
		}
	}
	return false
}
