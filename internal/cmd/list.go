package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dendrascience/huffarc/archive"
	"github.com/dendrascience/huffarc/util"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand.
func NewListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list ARCHIVE",
		Short: "List the entries of an archive",
		Long: `List the entries of an archive in stored order.

For each entry the compressed size, the number of symbols its header
declares and the number of distinct byte values are shown. Payloads are not
decoded; use verify for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func runList(out io.Writer, archivePath string, asJSON bool) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	infos, err := archive.List(f)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}
	if asJSON {
		return util.WriteJSON(out, infos)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTORED\tSYMBOLS\tDISTINCT")
	var stored, symbols int64
	for _, info := range infos {
		if info.Err != "" {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t%s\n", info.Name, info.Size, info.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", info.Name, info.Size, info.Symbols, info.Distinct)
		stored += info.Size
		symbols += info.Symbols
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal entries: %d (%d bytes stored, %d bytes original)\n", len(infos), stored, symbols)
	return nil
}
