package cmd

//go:generate go run ../main.go gen-docs --path ../docs

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewCmdGenDocs creates a new gen-docs command
func NewCmdGenDocs(rootCmd *cobra.Command) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate markdown documentation",
		Long:  `Generate the markdown documentation of available CLI flags`,
		Args:  cobra.NoArgs,
		RunE:  runGenDocs(rootCmd, &docPath),
	}

	cmd.PersistentFlags().StringVar(&docPath, "path", "docs", "directory path where the markdown files will be created")

	return cmd
}

// runGenDocs writes the markdown documentation of the whole command tree
func runGenDocs(rootCmd *cobra.Command, path *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(*path, 0o755); err != nil {
			return err
		}
		return doc.GenMarkdownTree(rootCmd, *path)
	}
}
