package agentwire

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCLINotFoundError_Creation tests CLINotFoundError creation and formatting.
func TestCLINotFoundError_Creation(t *testing.T) {
	searchedPaths := []string{
		"$PATH",
		"/usr/local/bin/agent",
		"/usr/bin/agent",
	}
	err := &CLINotFoundError{
		SearchedPaths: searchedPaths,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "agent CLI not found")
	require.Contains(t, err.Error(), "$PATH")
	require.Contains(t, err.Error(), "/usr/local/bin/agent")
}

// TestConnectionError_Creation tests ConnectionError creation and formatting.
func TestConnectionError_Creation(t *testing.T) {
	innerErr := fmt.Errorf("connection refused")
	err := &ConnectionError{
		Err: innerErr,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect to agent process")
	require.Contains(t, err.Error(), "connection refused")
	require.ErrorIs(t, err, innerErr)
}

// TestProcessError_WithExitCodeAndStderr tests ProcessError with exit code and stderr.
func TestProcessError_WithExitCodeAndStderr(t *testing.T) {
	err := &ProcessError{
		ExitCode: 1,
		Stderr:   "Error: authentication failed",
		Err:      nil,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "agent process failed")
	require.Contains(t, err.Error(), "exit 1")
	require.Contains(t, err.Error(), "authentication failed")
}

// TestMessageParseError_Creation tests MessageParseError creation and formatting.
func TestMessageParseError_Creation(t *testing.T) {
	innerErr := fmt.Errorf("invalid JSON")
	err := &MessageParseError{
		Message: `{"incomplete": `,
		Err:     innerErr,
		Data: map[string]any{
			"incomplete": true,
		},
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse message")
	require.Contains(t, err.Error(), "invalid JSON")
}

// TestMessageParseError_PreservesData tests that the offending payload is kept for diagnosis.
func TestMessageParseError_PreservesData(t *testing.T) {
	err := &MessageParseError{
		Message: `{"type": "unknown", "data": 123}`,
		Err:     fmt.Errorf("unknown type"),
		Data: map[string]any{
			"type": "unknown",
			"data": 123,
		},
	}

	require.Equal(t, `{"type": "unknown", "data": 123}`, err.Message)
	require.Equal(t, "unknown", err.Data["type"])
	require.Equal(t, 123, err.Data["data"])
}

// TestJSONDecodeError_PreservesRawData tests that raw data is preserved.
func TestJSONDecodeError_PreservesRawData(t *testing.T) {
	rawData := `{"type": "user", invalid}`
	err := &JSONDecodeError{
		RawData: rawData,
		Err:     fmt.Errorf("invalid character"),
	}

	require.Equal(t, rawData, err.RawData)
	require.Contains(t, err.Error(), "failed to decode JSON")
	require.Contains(t, err.Error(), "invalid character")
}

// TestJSONDecodeError_Unwrap tests that the underlying error can be unwrapped.
func TestJSONDecodeError_Unwrap(t *testing.T) {
	innerErr := fmt.Errorf("syntax error")
	err := &JSONDecodeError{
		RawData: `{bad}`,
		Err:     innerErr,
	}

	require.ErrorIs(t, err, innerErr)
}

// TestDuplicateToolError_Formatting tests the registry duplicate error.
func TestDuplicateToolError_Formatting(t *testing.T) {
	err := &DuplicateToolError{Name: "add"}

	require.Error(t, err)
	require.Contains(t, err.Error(), "tool already registered")
	require.Contains(t, err.Error(), "add")
}
