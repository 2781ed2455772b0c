// Package client implements the interactive agent client.
//
// The client owns the transport, the protocol controller, and the session,
// and exposes message iteration plus runtime control operations (interrupt,
// permission mode, model selection, MCP status). Connection lifecycle is
// tracked with an explicit state machine so concurrent callers observe
// consistent connected/disconnecting behavior.
package client
