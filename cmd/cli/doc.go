// Package cli wires the cmdkit command-line application: configuration
// loading, structured logging, and the run, which, exists, and spawn
// subcommands built on the process execution packages.
package cli
