// Package cmd provides the command-line interface implementation for huffarc.
//
// This package contains all the subcommand implementations for the huffarc CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - compress, decompress: Single-file coding
//   - pack, unpack: Directory batches through the parallel package
//   - list, verify: Archive inspection and integrity checking
//   - seed: Test corpus generation
//   - version: Build information
//   - worker: Hidden entry point re-executed by the process pool
//
// Each command is implemented with its own constructor function that returns a
// *cobra.Command. Command bodies live in run functions that write to an
// io.Writer and return an error, so they can be exercised without a terminal.
package cmd
