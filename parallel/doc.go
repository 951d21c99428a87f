// Package parallel packs a directory into an archive, and unpacks it again,
// by running the single-file codec once per file under one of three
// scheduling strategies:
//
//   - serial: every file in turn, in process.
//   - threads: a fixed pool of goroutines, sized to the CPU count, claiming
//     file indexes from one shared atomic counter.
//   - processes: one OS process per file, each re-executing this binary's
//     worker entry point, joined with a wait barrier.
//
// Whatever the strategy, each file is coded into its own temporary artifact
// and the archive is assembled only after every worker has finished, by a
// single goroutine walking the files in enumeration order. The archive bytes
// therefore do not depend on the strategy or on completion order.
//
// A file that fails is left out and reported in the Result; the rest of the
// batch still runs.
package parallel
