package agentwire

import (
	"github.com/wagiedev/agentwire/internal/errors"
	"github.com/wagiedev/agentwire/internal/tool"
)

// Re-export error types from internal packages

// CLINotFoundError indicates the agent CLI binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// ConnectionError indicates failure to connect to the agent process.
type ConnectionError = errors.ConnectionError

// ProcessError indicates the agent process failed.
type ProcessError = errors.ProcessError

// MessageParseError indicates message parsing failed.
type MessageParseError = errors.MessageParseError

// JSONDecodeError indicates JSON parsing failed for agent output.
type JSONDecodeError = errors.JSONDecodeError

// DuplicateToolError indicates a tool name was registered twice.
type DuplicateToolError = tool.DuplicateToolError

// UnknownToolError indicates a call to a tool that was never registered.
type UnknownToolError = tool.UnknownToolError

// InvalidArgumentsError indicates tool arguments failed schema validation.
type InvalidArgumentsError = tool.InvalidArgumentsError

// SDKError is the base interface for all SDK errors.
type SDKError = errors.SDKError

// Re-export sentinel errors from the internal package.
var (
	// ErrNotConnected indicates the client is not connected.
	ErrNotConnected = errors.ErrNotConnected

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrRequestTimeout indicates a control request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrRequestCancelled indicates a pending control request was orphaned
	// by disconnect before a response arrived.
	ErrRequestCancelled = errors.ErrRequestCancelled
)
