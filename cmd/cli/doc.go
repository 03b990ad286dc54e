// Package cli constructs the kbcheck command-line interface. It wires the
// Cobra command hierarchy to the Viper configuration loader and the zap
// loggers, registers the audit and notify commands, and renders failures for
// the process entry point.
package cli
