// Package execproc spawns external processes and reports their outcomes.
//
// ProcessRunner executes a command synchronously, blocking until the child
// exits or an optional timeout forces termination, and produces an immutable
// CommandResult. BackgroundProcessLauncher starts a caller-managed child,
// optionally detached into its own session, and returns a live ProcessHandle
// without waiting. Failures surface as typed errors carrying the original
// command text and enough context for the caller to decide recovery.
package execproc
