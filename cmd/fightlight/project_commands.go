package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fightlight/fightlight/internal/service"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Initialize a new FightLight project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := ctx.ensureStorage()
			if err != nil {
				return err
			}

			if storage.Exists() && !confirm(cmd, "Project state file already exists. Overwrite?") {
				printWarn(cmd.OutOrStdout(), "Cancelled\n")
				return nil
			}

			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			if err := srv.Create(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to initialize project: %w", err)
			}

			printOk(cmd.OutOrStdout(), "Initialized project: %s\n", args[0])
			return nil
		},
	}
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current project status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			state, err := srv.State(cmd.Context())
			if err != nil {
				if errors.Is(err, service.ErrProjectNotFound) {
					return errors.New("no project found, run 'fightlight init <name>' to create one")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project: %s\n", state.ProjectName)

			if state.VideoFile != nil {
				fmt.Fprintf(out, "Video: %s\n", state.VideoFile.Path)
				if state.VideoFile.Duration != nil {
					fmt.Fprintf(out, "Duration: %s\n", formatSeconds(*state.VideoFile.Duration))
				}
			} else {
				printWarn(out, "No video file loaded\n")
			}

			fmt.Fprintf(out, "Highlights: %d\n", len(state.Highlights))

			if selected := state.SelectedHighlight(); selected != nil {
				fmt.Fprintf(out, "Selected: %s\n", selected.Name)
			}

			return nil
		},
	}
}
