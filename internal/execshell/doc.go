// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle events,
// OSCommandRunner is the os/exec backed default, and CommandMessageFormatter
// renders human-readable descriptions of the git invocations kbcheck performs.
package execshell
