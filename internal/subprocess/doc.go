// Package subprocess implements the Transport interface by spawning the
// agent CLI as a child process and communicating over its stdio pipes.
package subprocess
