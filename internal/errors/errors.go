// Package errors defines the error taxonomy shared across the SDK.
package errors

import (
	"errors"
	"fmt"
)

// SDKError is the base interface for all typed SDK errors.
type SDKError interface {
	error
	IsSDKError() bool
}

// Compile-time verification that all error types implement SDKError.
var (
	_ SDKError = (*CLINotFoundError)(nil)
	_ SDKError = (*ConnectionError)(nil)
	_ SDKError = (*ProcessError)(nil)
	_ SDKError = (*MessageParseError)(nil)
	_ SDKError = (*JSONDecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates the client is not connected.
	ErrNotConnected = errors.New("client not connected")

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.New("client already connected")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrRequestTimeout indicates a control request exceeded its deadline.
	// Surfaced only to the caller awaiting that specific request.
	ErrRequestTimeout = errors.New("control request timeout")

	// ErrRequestCancelled indicates a pending control request was orphaned
	// by session shutdown before a response arrived.
	ErrRequestCancelled = errors.New("control request cancelled")

	// ErrStdinClosed indicates stdin was closed due to context cancellation.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrOperationCancelled indicates an inbound operation was cancelled via
	// a cancel request from the agent process.
	ErrOperationCancelled = errors.New("operation cancelled")
)

// CLINotFoundError indicates the agent CLI binary was not found.
type CLINotFoundError struct {
	SearchedPaths []string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("agent CLI not found in: %v", e.SearchedPaths)
}

// IsSDKError implements SDKError.
func (e *CLINotFoundError) IsSDKError() bool { return true }

// ConnectionError indicates the transport to the agent process could not be
// established or maintained. Fatal to the session; not retried automatically.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to agent process: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *ConnectionError) IsSDKError() bool { return true }

// ProcessError indicates the agent process exited abnormally.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("agent process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *ProcessError) IsSDKError() bool { return true }

// MessageParseError indicates an inbound record failed validation.
// Data preserves the offending raw payload for diagnosis. The record is
// dropped; the session continues unless the transport itself fails.
type MessageParseError struct {
	Message string
	Err     error
	Data    map[string]any
}

func (e *MessageParseError) Error() string {
	return fmt.Sprintf("failed to parse message: %v", e.Err)
}

func (e *MessageParseError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *MessageParseError) IsSDKError() bool { return true }

// JSONDecodeError indicates a transport line was not valid JSON.
// RawData preserves the original line that failed to decode.
type JSONDecodeError struct {
	RawData string
	Err     error
}

func (e *JSONDecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON line from agent process: %v", e.Err)
}

func (e *JSONDecodeError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *JSONDecodeError) IsSDKError() bool { return true }
