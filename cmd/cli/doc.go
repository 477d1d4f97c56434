// Package cli constructs the jjprompt command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. The root command renders the prompt when invoked without a
// subcommand.
package cli
