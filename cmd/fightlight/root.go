package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var stateFlag string
	var verboseFlag bool

	ctx := newCommandContext(&stateFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "fightlight",
		Short:         "FightLight - Boxing highlight cutter CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&stateFlag, "state", defaultStatePath, "path to the project state file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newImportHighlightsCommand(ctx))
	rootCmd.AddCommand(newHighlightsCommand(ctx))
	rootCmd.AddCommand(newAddHighlightCommand(ctx))
	rootCmd.AddCommand(newRemoveHighlightCommand(ctx))
	rootCmd.AddCommand(newSelectCommand(ctx))
	rootCmd.AddCommand(newUpdateRangeCommand(ctx))
	rootCmd.AddCommand(newNudgeCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
