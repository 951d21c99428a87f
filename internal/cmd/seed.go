package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/huffarc/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand.
// It generates a flat directory of test files with mixed content.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		maxSize    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a directory of test files",
		Long: `Generate a flat directory of test files for pack and unpack.

Files mix three kinds of content so that compression ratios vary: lines of
UUIDs drawn from a small pool, repeated text, and random bytes. Each file ends
up between one byte and --max-size bytes long. A few files are empty or hold a
single repeated byte, which exercise the codec's edge cases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout(), outputPath, fileCount, maxSize, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 100, "Number of files to generate")
	cmd.Flags().IntVar(&maxSize, "max-size", 64*1024, "Maximum file size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func runSeed(out io.Writer, outputPath string, fileCount, maxSize int, verbose bool) error {
	if maxSize < 1 {
		return fmt.Errorf("--max-size must be at least 1, got %d", maxSize)
	}
	if verbose {
		fmt.Fprintf(out, "Generating %d test files in %s\n", fileCount, outputPath)
	}
	if err := util.EnsureDir(outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate pool of 50 UUIDs
	uuidPool := make([]string, 50)
	for i := range uuidPool {
		uuidPool[i] = uuid.New().String()
	}

	var total int64
	for i := range fileCount {
		var content []byte
		size := 1 + randInt(maxSize)
		switch i % 10 {
		case 0:
			if i%20 == 0 {
				content = nil
			} else {
				content = []byte(strings.Repeat("x", size))
			}
		case 1, 2, 3, 4:
			var b strings.Builder
			for b.Len() < size {
				b.WriteString(uuidPool[randInt(len(uuidPool))])
				b.WriteByte('\n')
			}
			content = []byte(b.String()[:size])
		case 5, 6, 7:
			phrase := fmt.Sprintf("record %d of %s; ", i, uuidPool[i%len(uuidPool)])
			content = []byte(strings.Repeat(phrase, size/len(phrase)+1)[:size])
		default:
			content = make([]byte, size)
			rand.Read(content)
		}

		name := fmt.Sprintf("%08x.dat", randInt(0xFFFFFFFF))
		path := filepath.Join(outputPath, name)
		if _, err := os.Stat(path); err == nil {
			name = fmt.Sprintf("%08x_%d.dat", randInt(0xFFFFFFFF), i)
			path = filepath.Join(outputPath, name)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
		total += int64(len(content))

		if verbose && (i+1)%100 == 0 {
			fmt.Fprintf(out, "Created %d/%d files...\n", i+1, fileCount)
		}
	}

	fmt.Fprintf(out, "Created %d files (%d bytes) in %s\n", fileCount, total, outputPath)
	return nil
}
