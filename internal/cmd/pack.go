package cmd

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/dendrascience/huffarc/parallel"
	"github.com/spf13/cobra"
)

// batchFlags holds the flags shared by pack and unpack.
type batchFlags struct {
	strategy string
	workers  int
	tempDir  string
	verbose  bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", string(parallel.Threads),
		"Scheduling strategy: "+strings.Join(parallel.Strategies(), ", "))
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Thread pool size (default one per CPU)")
	cmd.Flags().StringVar(&f.tempDir, "tmp", "", "Directory for per-file temporary artifacts (default $TMPDIR)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")
}

func (f *batchFlags) options() (parallel.Options, error) {
	s, err := parallel.ParseStrategy(f.strategy)
	if err != nil {
		return parallel.Options{}, err
	}
	return parallel.Options{
		Strategy: s,
		Workers:  f.workers,
		TempDir:  f.tempDir,
		Verbose:  f.verbose,
	}, nil
}

// NewPackCmd creates and returns the pack subcommand.
func NewPackCmd() *cobra.Command {
	var (
		output string
		flags  batchFlags
	)

	cmd := &cobra.Command{
		Use:   "pack DIR",
		Short: "Compress every regular file of a directory into one archive",
		Long: `Compress every regular file directly inside DIR into one archive.

Subdirectories, symlinks and other special files are skipped; there is no
recursion. Entries are stored in file name order, and the archive does not
depend on the strategy used to build it.

A file that fails to compress is reported and left out of the archive. The
command exits non-zero if that happens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runPack(cmd.OutOrStdout(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default DIR.huff)")
	flags.register(cmd)

	return cmd
}

func runPack(out io.Writer, srcDir, archivePath string, opts parallel.Options) error {
	if archivePath == "" {
		archivePath = compressedPath(srcDir)
	}
	if sameDir(srcDir, filepath.Dir(archivePath)) {
		log.Printf("Warning: %s is inside %s and will be picked up by the next pack", archivePath, srcDir)
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Packing %s into %s (%s)\n", srcDir, archivePath, opts.Strategy)
	}

	res, err := parallel.CompressDir(srcDir, archivePath, opts)
	if err != nil {
		return err
	}
	printBatch(out, "Packed", res)
	return res.Err()
}

// NewUnpackCmd creates and returns the unpack subcommand.
func NewUnpackCmd() *cobra.Command {
	var (
		output string
		flags  batchFlags
	)

	cmd := &cobra.Command{
		Use:   "unpack ARCHIVE",
		Short: "Restore every entry of an archive into a directory",
		Long: `Restore every entry of an archive produced by pack.

The destination directory is created if it does not exist. Existing files
with the same names are overwritten. An entry that fails to decode is
reported and the remaining entries are still restored; the command then
exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runUnpack(cmd.OutOrStdout(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination directory (default ARCHIVE without .huff)")
	flags.register(cmd)

	return cmd
}

func runUnpack(out io.Writer, archivePath, dstDir string, opts parallel.Options) error {
	if dstDir == "" {
		dstDir = restoredPath(archivePath)
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Unpacking %s into %s (%s)\n", archivePath, dstDir, opts.Strategy)
	}

	res, err := parallel.DecompressDir(archivePath, dstDir, opts)
	if err != nil {
		return err
	}
	printBatch(out, "Unpacked", res)
	return res.Err()
}

func printBatch(out io.Writer, verb string, res parallel.Result) {
	fmt.Fprintf(out, "%s %d files\n", verb, len(res.Files))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "  Skipped: %d (not regular files)\n", len(res.Skipped))
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(out, "  Failed: %d\n", len(res.Failed))
		for _, f := range res.Failed {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}
}
