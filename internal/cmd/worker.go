package cmd

import (
	"github.com/dendrascience/huffarc/parallel"
	"github.com/spf13/cobra"
)

// NewWorkerCmd creates the hidden worker subcommand that the process pool
// runs once per file.
func NewWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "worker compress|decompress SRC DST",
		Short:  "Code one file on behalf of pack or unpack",
		Hidden: true,
		Args:   cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return parallel.RunWorker(args)
		},
	}
}
