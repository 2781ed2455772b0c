// Package agentwire provides a Go SDK for driving a coding agent CLI over
// its bidirectional control protocol.
//
// The SDK speaks newline-delimited JSON with a long-lived agent process,
// multiplexing conversation messages with control traffic: permission
// checks, hook callbacks, and in-process MCP tool calls. It supports both
// one-shot queries and interactive multi-turn conversations.
//
// # Basic Usage
//
// For simple, one-shot queries, use the Query function:
//
//	ctx := context.Background()
//	for msg, err := range agentwire.Query(ctx, "What is 2+2?",
//	    agentwire.WithPermissionMode("acceptEdits"),
//	    agentwire.WithMaxTurns(1),
//	) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    switch m := msg.(type) {
//	    case *agentwire.AssistantMessage:
//	        for _, block := range m.Content {
//	            if text, ok := block.(*agentwire.TextBlock); ok {
//	                fmt.Println(text.Text)
//	            }
//	        }
//	    case *agentwire.ResultMessage:
//	        fmt.Printf("Completed in %dms\n", m.DurationMs)
//	    }
//	}
//
// # Interactive Sessions
//
// For multi-turn conversations, use NewClient or the WithClient helper:
//
//	err := agentwire.WithClient(ctx, func(c agentwire.Client) error {
//	    if err := c.Query(ctx, "Hello"); err != nil {
//	        return err
//	    }
//	    for msg, err := range c.ReceiveResponse(ctx) {
//	        if err != nil {
//	            return err
//	        }
//	        // process message...
//	    }
//	    return nil
//	},
//	    agentwire.WithLogger(slog.Default()),
//	    agentwire.WithPermissionMode("acceptEdits"),
//	)
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	for msg, err := range agentwire.Query(ctx, "Hello", agentwire.WithLogger(logger)) {
//	    ...
//	}
//
// # Error Handling
//
// The SDK provides typed errors for different failure scenarios:
//
//	for msg, err := range agentwire.Query(ctx, prompt) {
//	    if err != nil {
//	        if cliErr, ok := errors.AsType[*agentwire.CLINotFoundError](err); ok {
//	            log.Fatalf("agent CLI not installed, searched: %v", cliErr.SearchedPaths)
//	        }
//	        if procErr, ok := errors.AsType[*agentwire.ProcessError](err); ok {
//	            log.Fatalf("agent process failed with exit code %d: %s", procErr.ExitCode, procErr.Stderr)
//	        }
//	        log.Fatal(err)
//	    }
//	}
//
// # Requirements
//
// This SDK requires the agent CLI to be installed and available in your
// system PATH. You can specify a custom CLI path using the WithCLIPath option.
package agentwire
