package message

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wagiedev/agentwire/internal/errors"
)

// Parse converts a raw JSON map into a typed Message.
//
// Parsing is strict: unknown message types, unknown content block types,
// and frames missing required fields all produce a MessageParseError
// carrying the offending data. Unknown fields inside known frames are
// ignored for forward compatibility.
func Parse(log *slog.Logger, data map[string]any) (Message, error) {
	log = log.With("component", "message_parser")

	msgType, ok := data["type"].(string)
	if !ok {
		log.Debug("Message missing 'type' field")

		return nil, &errors.MessageParseError{
			Message: "missing or invalid 'type' field",
			Err:     fmt.Errorf("missing or invalid 'type' field"),
			Data:    data,
		}
	}

	log.Debug("Parsing message", "message_type", msgType)

	var (
		msg Message
		err error
	)

	switch msgType {
	case "user":
		msg, err = parseUserMessage(data)
	case "assistant":
		msg, err = parseAssistantMessage(data)
	case "system":
		msg, err = parseSystemMessage(data)
	case "result":
		msg, err = parseResultMessage(data)
	case "stream_event":
		msg, err = parseStreamEvent(data)
	default:
		log.Debug("Rejecting unknown message type", "message_type", msgType)

		err = fmt.Errorf("unknown message type: %q", msgType)
	}

	if err != nil {
		return nil, &errors.MessageParseError{
			Message: err.Error(),
			Err:     err,
			Data:    data,
		}
	}

	return msg, nil
}

// parseUserMessage parses a UserMessage from raw JSON.
// The wire format has a nested "message" field containing the content.
func parseUserMessage(data map[string]any) (*UserMessage, error) {
	msg := &UserMessage{
		Type: "user",
	}

	messageData, ok := data["message"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("user message: missing or invalid 'message' field")
	}

	contentData, ok := messageData["content"]
	if !ok {
		return nil, fmt.Errorf("user message: missing content field")
	}

	// Marshal content back to JSON for UserMessageContent.UnmarshalJSON
	contentJSON, err := json.Marshal(contentData)
	if err != nil {
		return nil, fmt.Errorf("user message: marshal content: %w", err)
	}

	var content UserMessageContent
	if err := json.Unmarshal(contentJSON, &content); err != nil {
		return nil, fmt.Errorf("user message: %w", err)
	}

	msg.Content = content

	// uuid and parent_tool_use_id stay at top level (outer data)
	if uuid, ok := data["uuid"].(string); ok {
		msg.UUID = &uuid
	}

	if parentToolUseID, ok := data["parent_tool_use_id"].(string); ok {
		msg.ParentToolUseID = &parentToolUseID
	}

	return msg, nil
}

// parseAssistantMessage parses an AssistantMessage from raw JSON.
func parseAssistantMessage(data map[string]any) (*AssistantMessage, error) {
	msg := &AssistantMessage{
		Type: "assistant",
	}

	messageData, ok := data["message"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("assistant message: missing or invalid 'message' field")
	}

	contentData, ok := messageData["content"].([]any)
	if !ok || len(contentData) == 0 {
		return nil, fmt.Errorf("assistant message: missing or empty 'content' field")
	}

	content, err := parseContentBlocks(contentData)
	if err != nil {
		return nil, fmt.Errorf("parse assistant content: %w", err)
	}

	msg.Content = content

	if model, ok := messageData["model"].(string); ok {
		msg.Model = model
	}

	// parent_tool_use_id and error live at the top level, not in messageData
	if parentToolUseID, ok := data["parent_tool_use_id"].(string); ok {
		msg.ParentToolUseID = &parentToolUseID
	}

	if errorVal, ok := data["error"].(string); ok {
		errType := AssistantMessageError(errorVal)
		msg.Error = &errType
	}

	return msg, nil
}

// parseSystemMessage parses a SystemMessage from raw JSON.
func parseSystemMessage(data map[string]any) (*SystemMessage, error) {
	msg := &SystemMessage{
		Type: "system",
	}

	subtype, ok := data["subtype"].(string)
	if !ok {
		return nil, fmt.Errorf("system message: missing or invalid 'subtype' field")
	}

	msg.Subtype = subtype

	// Some frames nest extra fields under "data", others put them at the
	// root level. Normalize both into Data.
	if msgData, ok := data["data"].(map[string]any); ok {
		msg.Data = msgData
	} else {
		msg.Data = make(map[string]any)

		for k, v := range data {
			if k != "type" && k != "subtype" {
				msg.Data[k] = v
			}
		}
	}

	return msg, nil
}

// parseStreamEvent parses a StreamEvent from raw JSON.
func parseStreamEvent(data map[string]any) (*StreamEvent, error) {
	event := &StreamEvent{}

	uuid, ok := data["uuid"].(string)
	if !ok {
		return nil, fmt.Errorf("stream_event: missing or invalid 'uuid' field")
	}

	event.UUID = uuid

	sessionID, ok := data["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("stream_event: missing or invalid 'session_id' field")
	}

	event.SessionID = sessionID

	eventData, ok := data["event"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stream_event: missing or invalid 'event' field")
	}

	event.Event = eventData

	if parentToolUseID, ok := data["parent_tool_use_id"].(string); ok {
		event.ParentToolUseID = &parentToolUseID
	}

	return event, nil
}

// parseResultMessage parses a ResultMessage from raw JSON.
func parseResultMessage(data map[string]any) (*ResultMessage, error) {
	if _, ok := data["subtype"].(string); !ok {
		return nil, fmt.Errorf("result message: missing or invalid 'subtype' field")
	}

	// Re-marshal and unmarshal to use json struct tags for proper parsing
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	var msg ResultMessage
	if err := json.Unmarshal(jsonBytes, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	return &msg, nil
}

// parseContentBlocks parses an array of content blocks.
func parseContentBlocks(data []any) ([]ContentBlock, error) {
	blocks := make([]ContentBlock, 0, len(data))

	for i, item := range data {
		blockData, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("content block %d: not an object", i)
		}

		block, err := parseContentBlock(blockData)
		if err != nil {
			return nil, fmt.Errorf("content block %d: %w", i, err)
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

// parseContentBlock parses a single content block.
func parseContentBlock(data map[string]any) (ContentBlock, error) {
	blockType, ok := data["type"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'type' field")
	}

	switch blockType {
	case BlockTypeText:
		return parseTextBlock(data)
	case BlockTypeThinking:
		return parseThinkingBlock(data)
	case BlockTypeToolUse:
		return parseToolUseBlock(data)
	case BlockTypeToolResult:
		return parseToolResultBlock(data)
	default:
		return nil, fmt.Errorf("unknown content block type: %q", blockType)
	}
}

// parseTextBlock parses a TextBlock from raw JSON.
func parseTextBlock(data map[string]any) (*TextBlock, error) {
	text, ok := data["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text block: missing or invalid 'text' field")
	}

	return &TextBlock{
		Type: BlockTypeText,
		Text: text,
	}, nil
}

// parseThinkingBlock parses a ThinkingBlock from raw JSON.
func parseThinkingBlock(data map[string]any) (*ThinkingBlock, error) {
	thinking, ok := data["thinking"].(string)
	if !ok {
		return nil, fmt.Errorf("thinking block: missing or invalid 'thinking' field")
	}

	signature, ok := data["signature"].(string)
	if !ok {
		return nil, fmt.Errorf("thinking block: missing or invalid 'signature' field")
	}

	return &ThinkingBlock{
		Type:      BlockTypeThinking,
		Thinking:  thinking,
		Signature: signature,
	}, nil
}

// parseToolUseBlock parses a ToolUseBlock from raw JSON.
func parseToolUseBlock(data map[string]any) (*ToolUseBlock, error) {
	id, ok := data["id"].(string)
	if !ok {
		return nil, fmt.Errorf("tool_use block: missing or invalid 'id' field")
	}

	name, ok := data["name"].(string)
	if !ok {
		return nil, fmt.Errorf("tool_use block: missing or invalid 'name' field")
	}

	input, ok := data["input"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tool_use block: missing or invalid 'input' field")
	}

	return &ToolUseBlock{
		Type:  BlockTypeToolUse,
		ID:    id,
		Name:  name,
		Input: input,
	}, nil
}

// parseToolResultBlock parses a ToolResultBlock from raw JSON.
func parseToolResultBlock(data map[string]any) (*ToolResultBlock, error) {
	toolUseID, ok := data["tool_use_id"].(string)
	if !ok {
		return nil, fmt.Errorf("tool_result block: missing or invalid 'tool_use_id' field")
	}

	block := &ToolResultBlock{
		Type:      BlockTypeToolResult,
		ToolUseID: toolUseID,
	}

	if isError, ok := data["is_error"].(bool); ok {
		block.IsError = isError
	}

	switch contentData := data["content"].(type) {
	case []any:
		content, err := parseContentBlocks(contentData)
		if err != nil {
			return nil, fmt.Errorf("parse tool result content: %w", err)
		}

		block.Content = content
	case string:
		block.Content = []ContentBlock{&TextBlock{Type: BlockTypeText, Text: contentData}}
	}

	return block, nil
}
