package agentwire

// Hook types are re-exported from types.go for convenience.
// See types.go for documentation on hook-related types including:
// - HookEvent, HookInput, HookCallback, HookMatcher
// - All hook event constants (HookEventPreToolUse, etc.)
// - All hook input types (PreToolUseHookInput, etc.)
// - HookOutput and the hook-specific output types
