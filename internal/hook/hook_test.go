package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestMatcher_Matches(t *testing.T) {
	tests := []struct {
		name     string
		matcher  *string
		toolName string
		want     bool
	}{
		{"nil matches everything", nil, "Bash", true},
		{"nil matches empty tool", nil, "", true},
		{"empty string matches everything", strPtr(""), "Write", true},
		{"exact match", strPtr("Bash"), "Bash", true},
		{"exact mismatch", strPtr("Bash"), "Write", false},
		{"pipe separated match first", strPtr("Write|Edit"), "Write", true},
		{"pipe separated match second", strPtr("Write|Edit"), "Edit", true},
		{"pipe separated mismatch", strPtr("Write|Edit"), "Bash", false},
		{"whitespace tolerated", strPtr("Write | Edit"), "Edit", true},
		{"no substring matching", strPtr("Write"), "WriteFile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Matcher{Matcher: tt.matcher}
			assert.Equal(t, tt.want, m.Matches(tt.toolName))
		})
	}
}

func TestOutput_Blocks(t *testing.T) {
	assert.False(t, (*Output)(nil).Blocks())
	assert.False(t, (&Output{}).Blocks())
	assert.False(t, (&Output{Decision: strPtr("approve")}).Blocks())
	assert.True(t, (&Output{Decision: strPtr("block")}).Blocks())
}

func TestInputEventNames(t *testing.T) {
	assert.Equal(t, EventPreToolUse, (&PreToolUseInput{}).GetHookEventName())
	assert.Equal(t, EventPostToolUse, (&PostToolUseInput{}).GetHookEventName())
	assert.Equal(t, EventUserPromptSubmit, (&UserPromptSubmitInput{}).GetHookEventName())
	assert.Equal(t, EventStop, (&StopInput{}).GetHookEventName())
	assert.Equal(t, EventSubagentStop, (&SubagentStopInput{}).GetHookEventName())
	assert.Equal(t, EventPreCompact, (&PreCompactInput{}).GetHookEventName())
	assert.Equal(t, EventNotification, (&NotificationInput{}).GetHookEventName())
}
