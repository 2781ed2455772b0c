package agentwire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestUserMessage_Creation tests user message creation.
func TestUserMessage_Creation(t *testing.T) {
	msg := &UserMessage{
		Type:    "user",
		Content: NewUserMessageContent("Hello!"),
	}

	require.Equal(t, "user", msg.Type)
	require.Equal(t, "user", msg.MessageType())
	require.True(t, msg.Content.IsString())
	require.Equal(t, "Hello!", msg.Content.String())

	blocks := msg.Content.Blocks()
	require.Len(t, blocks, 1)

	textBlock, ok := blocks[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "text", textBlock.Type)
	require.Equal(t, "Hello!", textBlock.Text)
}

// TestUserMessage_CreationWithBlocks tests user message creation with content blocks.
func TestUserMessage_CreationWithBlocks(t *testing.T) {
	msg := &UserMessage{
		Type: "user",
		Content: NewUserMessageContentBlocks([]ContentBlock{
			&TextBlock{Type: "text", Text: "Hello!"},
		}),
	}

	require.Equal(t, "user", msg.Type)
	require.Equal(t, "user", msg.MessageType())
	require.False(t, msg.Content.IsString())

	blocks := msg.Content.Blocks()
	require.Len(t, blocks, 1)

	textBlock, ok := blocks[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "text", textBlock.Type)
	require.Equal(t, "Hello!", textBlock.Text)
}

// TestAssistantMessage_WithTextContent tests assistant message with text content.
func TestAssistantMessage_WithTextContent(t *testing.T) {
	msg := &AssistantMessage{
		Type:  "assistant",
		Model: "fast-1",
		Content: []ContentBlock{
			&TextBlock{Type: "text", Text: "Hello! How can I help you?"},
		},
	}

	require.Equal(t, "assistant", msg.Type)
	require.Equal(t, "assistant", msg.MessageType())
	require.Equal(t, "fast-1", msg.Model)
	require.Len(t, msg.Content, 1)

	textBlock, ok := msg.Content[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "Hello! How can I help you?", textBlock.Text)
}

// TestAssistantMessage_WithThinkingContent tests assistant message with thinking content.
func TestAssistantMessage_WithThinkingContent(t *testing.T) {
	msg := &AssistantMessage{
		Type:  "assistant",
		Model: "deep-1",
		Content: []ContentBlock{
			&ThinkingBlock{
				Type:      "thinking",
				Thinking:  "Let me think about this problem...",
				Signature: "sig_abc123",
			},
			&TextBlock{Type: "text", Text: "The answer is 42."},
		},
	}

	require.Equal(t, "assistant", msg.MessageType())
	require.Len(t, msg.Content, 2)

	thinkingBlock, ok := msg.Content[0].(*ThinkingBlock)
	require.True(t, ok)
	require.Equal(t, "thinking", thinkingBlock.Type)
	require.Equal(t, "thinking", thinkingBlock.BlockType())
	require.Equal(t, "Let me think about this problem...", thinkingBlock.Thinking)
	require.Equal(t, "sig_abc123", thinkingBlock.Signature)

	textBlock, ok := msg.Content[1].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "The answer is 42.", textBlock.Text)
}

// TestToolUseBlock_Creation tests tool use block creation.
func TestToolUseBlock_Creation(t *testing.T) {
	block := &ToolUseBlock{
		Type: "tool_use",
		ID:   "tool_abc123",
		Name: "Bash",
		Input: map[string]any{
			"command":     "ls -la",
			"description": "List files",
		},
	}

	require.Equal(t, "tool_use", block.Type)
	require.Equal(t, "tool_use", block.BlockType())
	require.Equal(t, "tool_abc123", block.ID)
	require.Equal(t, "Bash", block.Name)
	require.Equal(t, "ls -la", block.Input["command"])
	require.Equal(t, "List files", block.Input["description"])
}

// TestToolResultBlock_Creation tests tool result block creation.
func TestToolResultBlock_Creation(t *testing.T) {
	block := &ToolResultBlock{
		Type:      "tool_result",
		ToolUseID: "tool_abc123",
		IsError:   false,
		Content: []ContentBlock{
			&TextBlock{Type: "text", Text: "file1.txt\nfile2.txt"},
		},
	}

	require.Equal(t, "tool_result", block.Type)
	require.Equal(t, "tool_result", block.BlockType())
	require.Equal(t, "tool_abc123", block.ToolUseID)
	require.False(t, block.IsError)
	require.Len(t, block.Content, 1)
}

// TestResultMessage_Creation tests result message creation.
func TestResultMessage_Creation(t *testing.T) {
	cost := 0.05
	msg := &ResultMessage{
		Type:         "result",
		Subtype:      "success",
		DurationMs:   1234,
		IsError:      false,
		NumTurns:     5,
		SessionID:    "session_abc123",
		TotalCostUSD: &cost,
		Usage: &Usage{
			InputTokens:  1000,
			OutputTokens: 500,
		},
	}

	require.Equal(t, "result", msg.Type)
	require.Equal(t, "result", msg.MessageType())
	require.Equal(t, "success", msg.Subtype)
	require.Equal(t, 1234, msg.DurationMs)
	require.False(t, msg.IsError)
	require.Equal(t, 5, msg.NumTurns)
	require.Equal(t, "session_abc123", msg.SessionID)
	require.NotNil(t, msg.TotalCostUSD)
	require.InDelta(t, 0.05, *msg.TotalCostUSD, 0.001)
	require.NotNil(t, msg.Usage)
	require.Equal(t, 1000, msg.Usage.InputTokens)
	require.Equal(t, 500, msg.Usage.OutputTokens)
}

// TestAgentOptions_DefaultValues tests default option values.
func TestAgentOptions_DefaultValues(t *testing.T) {
	options := &AgentOptions{}

	require.Empty(t, options.SystemPrompt)
	require.Empty(t, options.Model)
	require.Empty(t, options.PermissionMode)
	require.Zero(t, options.MaxTurns)
	require.Empty(t, options.Cwd)
	require.Empty(t, options.CLIPath)
	require.Nil(t, options.Env)
	require.Nil(t, options.Hooks)
}

// TestAgentOptions_WithTools tests options with tools.
func TestAgentOptions_WithTools(t *testing.T) {
	options := &AgentOptions{
		AllowedTools:    []string{"Bash", "Read"},
		DisallowedTools: []string{"Write"},
	}

	require.Len(t, options.AllowedTools, 2)
	require.Contains(t, options.AllowedTools, "Bash")
	require.Contains(t, options.AllowedTools, "Read")
	require.Len(t, options.DisallowedTools, 1)
	require.Contains(t, options.DisallowedTools, "Write")
}

// TestAgentOptions_WithPermissionMode tests options with permission mode.
func TestAgentOptions_WithPermissionMode(t *testing.T) {
	options := &AgentOptions{
		PermissionMode: string(PermissionModeAcceptEdits),
	}

	require.Equal(t, string(PermissionModeAcceptEdits), options.PermissionMode)
}

// TestAgentOptions_WithSessionContinuation tests options with session continuation.
func TestAgentOptions_WithSessionContinuation(t *testing.T) {
	options := &AgentOptions{
		Resume:               "session_previous_123",
		ContinueConversation: true,
		ForkSession:          true,
	}

	require.Equal(t, "session_previous_123", options.Resume)
	require.True(t, options.ContinueConversation)
	require.True(t, options.ForkSession)
}

// TestApplyAgentOptions tests the functional option builder.
func TestApplyAgentOptions(t *testing.T) {
	timeout := 30 * time.Second

	options := applyAgentOptions([]Option{
		WithSystemPrompt("You are a helpful coding assistant."),
		WithModel("fast-1"),
		WithPermissionMode(PermissionModeAcceptEdits),
		WithMaxTurns(5),
		WithAllowedTools("Read", "Grep"),
		WithDisallowedTools("Bash"),
		WithEnv(map[string]string{"TEST_VAR": "test_value"}),
		WithContinueConversation(),
		WithResume("session_123"),
		WithForkSession(),
		WithMaxBufferSize(1024),
		WithRequestTimeout(timeout),
		WithInitializeTimeout(timeout),
	})

	require.Equal(t, "You are a helpful coding assistant.", options.SystemPrompt)
	require.Equal(t, "fast-1", options.Model)
	require.Equal(t, string(PermissionModeAcceptEdits), options.PermissionMode)
	require.Equal(t, 5, options.MaxTurns)
	require.Equal(t, []string{"Read", "Grep"}, options.AllowedTools)
	require.Equal(t, []string{"Bash"}, options.DisallowedTools)
	require.Equal(t, "test_value", options.Env["TEST_VAR"])
	require.True(t, options.ContinueConversation)
	require.Equal(t, "session_123", options.Resume)
	require.True(t, options.ForkSession)
	require.NotNil(t, options.MaxBufferSize)
	require.Equal(t, 1024, *options.MaxBufferSize)
	require.NotNil(t, options.RequestTimeout)
	require.Equal(t, timeout, *options.RequestTimeout)
	require.NotNil(t, options.InitializeTimeout)
	require.Equal(t, timeout, *options.InitializeTimeout)
}
