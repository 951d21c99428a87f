package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/huffarc/huffman"
	"github.com/spf13/cobra"
)

// NewCompressCmd creates and returns the compress subcommand.
func NewCompressCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compress FILE",
		Short: "Compress a single file",
		Long: `Compress a single regular file.

The output starts with a fixed 2056 byte header holding the symbol count and
the frequency of every byte value, followed by the packed codes. By default
the output is written next to the input with a .huff extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd.OutOrStdout(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default FILE.huff)")

	return cmd
}

func runCompress(out io.Writer, src, dst string) error {
	if dst == "" {
		dst = compressedPath(src)
	}
	if err := huffman.CompressFile(src, dst); err != nil {
		return err
	}
	printSizes(out, "Compressed", src, dst)
	return nil
}

// NewDecompressCmd creates and returns the decompress subcommand.
func NewDecompressCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decompress FILE.huff",
		Short: "Decompress a single file",
		Long: `Decompress a file produced by compress.

By default the output is written next to the input with the .huff extension
removed. If the input has no .huff extension, _restored is appended instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(cmd.OutOrStdout(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default FILE without .huff)")

	return cmd
}

func runDecompress(out io.Writer, src, dst string) error {
	if dst == "" {
		dst = restoredPath(src)
	}
	if err := huffman.DecompressFile(src, dst); err != nil {
		return err
	}
	printSizes(out, "Decompressed", src, dst)
	return nil
}

func printSizes(out io.Writer, verb, src, dst string) {
	in, err1 := os.Stat(src)
	res, err2 := os.Stat(dst)
	if err1 != nil || err2 != nil {
		fmt.Fprintf(out, "%s %s -> %s\n", verb, src, dst)
		return
	}
	fmt.Fprintf(out, "%s %s -> %s (%d -> %d bytes)\n", verb, src, dst, in.Size(), res.Size())
}
