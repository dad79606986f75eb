// Package cli constructs the ghissues command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging around
// the issue submitter.
package cli
