package cmd

import (
	"io"

	"github.com/dendrascience/huffarc/util"
	"github.com/dendrascience/huffarc/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")

	return cmd
}

func runVersion(out io.Writer, asJSON bool) error {
	if asJSON {
		return util.WriteJSON(out, version.GetInfo())
	}
	version.PrintVersion(out, "huffarc")
	return nil
}
