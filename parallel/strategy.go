package parallel

import (
	"fmt"
	"runtime"

	"github.com/dendrascience/huffarc/huffman"
)

// Strategy selects how per-file work is scheduled.
type Strategy string

const (
	Serial    Strategy = "serial"
	Threads   Strategy = "threads"
	Processes Strategy = "processes"
)

// Strategies lists the accepted strategy names.
func Strategies() []string {
	return []string{string(Serial), string(Threads), string(Processes)}
}

// ParseStrategy converts a name to a Strategy. The empty string selects
// Threads.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return Threads, nil
	case Serial, Threads, Processes:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, s, Strategies())
}

// Op is the per-file operation a worker performs.
type Op string

const (
	OpCompress   Op = "compress"
	OpDecompress Op = "decompress"
)

// ParseOp converts a name to an Op.
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpCompress, OpDecompress:
		return Op(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Run performs op on one file.
func (op Op) Run(src, dst string) error {
	switch op {
	case OpCompress:
		return huffman.CompressFile(src, dst)
	case OpDecompress:
		return huffman.DecompressFile(src, dst)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, string(op))
}

// DefaultWorkers returns the thread pool size: the number of CPUs, or 2 if
// that cannot be determined.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 2
}

// RunWorker is the entry point of a worker process. args are the operation,
// the source path and the destination path.
func RunWorker(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("worker: want 3 arguments (op src dst), got %d", len(args))
	}
	op, err := ParseOp(args[0])
	if err != nil {
		return err
	}
	return op.Run(args[1], args[2])
}
