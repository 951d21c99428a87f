package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dendrascience/huffarc/archive"
	"github.com/dendrascience/huffarc/util"
	"github.com/spf13/cobra"
)

// ErrVerifyFailed is returned when at least one check of verify fails.
var ErrVerifyFailed = errors.New("verification failed")

// NewVerifyCmd creates and returns the verify subcommand.
func NewVerifyCmd() *cobra.Command {
	var (
		source  string
		asJSON  bool
		report  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "verify ARCHIVE",
		Short: "Decode every entry of an archive and check it",
		Long: `Decode every entry of an archive without writing it to disk.

Each entry must carry a valid header and decode to exactly the number of
symbols it declares. With --source, the xxhash64 of every decoded entry is
also compared with the file of the same name in the source directory, and
files missing from either side are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.OutOrStdout(), args[0], verifyOptions{
				source:  source,
				asJSON:  asJSON,
				report:  report,
				verbose: verbose,
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Directory to compare decoded content with")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")
	cmd.Flags().StringVar(&report, "report", "", "Also write the results as JSON to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

type verifyOptions struct {
	source  string
	asJSON  bool
	report  string
	verbose bool
}

// verifyResult is the JSON form of a verify run.
type verifyResult struct {
	Archive string           `json:"archive"`
	Entries []archive.Report `json:"entries"`
	// Problems lists every failed check, one line each.
	Problems []string `json:"problems"`
}

func runVerify(out io.Writer, archivePath string, opts verifyOptions) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	reports, err := archive.Verify(f)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}
	res := verifyResult{Archive: archivePath, Entries: reports, Problems: []string{}}
	for _, r := range reports {
		if !r.OK() {
			res.Problems = append(res.Problems, fmt.Sprintf("%s: %s", r.Name, r.Err))
		}
	}
	if opts.source != "" {
		problems, err := compareSource(reports, opts.source)
		if err != nil {
			return err
		}
		res.Problems = append(res.Problems, problems...)
	}

	if opts.report != "" {
		if err := util.WriteJSONFile(opts.report, res); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	if opts.asJSON {
		if err := util.WriteJSON(out, res); err != nil {
			return err
		}
	} else {
		printVerify(out, res, opts.verbose)
	}

	if len(res.Problems) > 0 {
		return fmt.Errorf("%w: %d problems", ErrVerifyFailed, len(res.Problems))
	}
	return nil
}

// compareSource checks decoded digests against the regular files of dir.
func compareSource(reports []archive.Report, dir string) ([]string, error) {
	sums, err := util.HashDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", dir, err)
	}
	var problems []string
	seen := make(map[string]bool, len(reports))
	for _, r := range reports {
		seen[r.Name] = true
		if !r.OK() {
			continue
		}
		want, ok := sums[r.Name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: not in %s", r.Name, dir))
		case want != r.Digest:
			problems = append(problems, fmt.Sprintf("%s: content differs (archive %s, source %s)", r.Name, r.Digest, want))
		}
	}
	var missing []string
	for name := range sums {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	for _, name := range missing {
		problems = append(problems, fmt.Sprintf("%s: missing from archive", name))
	}
	return problems, nil
}

func printVerify(out io.Writer, res verifyResult, verbose bool) {
	if verbose {
		for _, r := range res.Entries {
			if r.OK() {
				fmt.Fprintf(out, "ok    %s  %s  %d bytes\n", r.Digest, r.Name, r.Symbols)
			}
		}
	}
	if len(res.Problems) > 0 {
		fmt.Fprintf(out, "Archive %s has %d problems:\n", res.Archive, len(res.Problems))
		for _, p := range res.Problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}

	fmt.Fprintf(out, "\nVerification complete:\n")
	fmt.Fprintf(out, "  Entries checked: %d\n", len(res.Entries))
	fmt.Fprintf(out, "  Problems: %d\n", len(res.Problems))
}
