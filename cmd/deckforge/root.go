package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".deckforge", "config.yaml")
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "deckforge",
		Short:         "Deckforge composes, edits, and exports pitch decks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath(), "Path to the configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newNewCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newTemplateCmd(flags))
	cmd.AddCommand(newBrandCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
