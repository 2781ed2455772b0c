package tool

import (
	"fmt"
	"strings"
)

// DuplicateToolError is returned when registering a tool whose name is
// already taken.
type DuplicateToolError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}

// IsSDKError marks this as an SDK error.
func (e *DuplicateToolError) IsSDKError() bool { return true }

// UnknownToolError is returned when dispatching to a tool that was never
// registered.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// IsSDKError marks this as an SDK error.
func (e *UnknownToolError) IsSDKError() bool { return true }

// InvalidArgumentsError is returned when tool arguments fail schema
// validation. Missing lists required parameters that were absent and
// Mismatched lists parameters whose values had the wrong type.
type InvalidArgumentsError struct {
	Tool       string
	Missing    []string
	Mismatched []string
}

// Error implements the error interface.
func (e *InvalidArgumentsError) Error() string {
	parts := make([]string, 0, 2)

	if len(e.Missing) > 0 {
		parts = append(parts, "missing required: "+strings.Join(e.Missing, ", "))
	}

	if len(e.Mismatched) > 0 {
		parts = append(parts, "wrong type: "+strings.Join(e.Mismatched, ", "))
	}

	return fmt.Sprintf("invalid arguments for tool %s (%s)", e.Tool, strings.Join(parts, "; "))
}

// IsSDKError marks this as an SDK error.
func (e *InvalidArgumentsError) IsSDKError() bool { return true }
