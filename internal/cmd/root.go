package cmd

import (
	"github.com/dendrascience/huffarc/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the huffarc CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "huffarc",
		Short: "huffarc - Huffman compression for files and flat directories",
		Long: `huffarc compresses single files, and flat directories packed into one
archive, with a canonical-by-construction Huffman code.

Directories can be packed serially, on a pool of goroutines, or with one
worker process per file. All three strategies produce byte-identical archives.

Use subcommands to perform different operations:
  - compress / decompress: Code a single file
  - pack / unpack: Code every regular file of a directory into one archive
  - list: Show the entries of an archive
  - verify: Decode every entry and optionally compare with a source directory
  - seed: Generate a directory of test files`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupFiles := "files"
	groupArchives := "archives"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFiles,
		Title: "File Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchives,
		Title: "Archive Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	compressCmd := NewCompressCmd()
	decompressCmd := NewDecompressCmd()
	packCmd := NewPackCmd()
	unpackCmd := NewUnpackCmd()
	listCmd := NewListCmd()
	verifyCmd := NewVerifyCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	compressCmd.GroupID = groupFiles
	decompressCmd.GroupID = groupFiles
	packCmd.GroupID = groupArchives
	unpackCmd.GroupID = groupArchives
	listCmd.GroupID = groupArchives
	verifyCmd.GroupID = groupArchives
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	// launched by the process pool, never by hand
	rootCmd.AddCommand(NewWorkerCmd())

	return rootCmd
}
