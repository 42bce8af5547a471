package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import a video file into the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			video, err := srv.ImportVideo(cmd.Context(), args[0])
			if err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found, run 'fightlight init <name>' first")
				case errors.Is(err, service.ErrVideoNotFound):
					return fmt.Errorf("video file not found: %s", args[0])
				case errors.Is(err, service.ErrUnsupportedMime):
					return fmt.Errorf("not a video file: %s", args[0])
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Video imported: %s\n", video.Path)
			return nil
		},
	}
}

func newImportHighlightsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import-highlights <file>",
		Short: "Import highlights from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var highlights []models.Highlight
			if err := json.Unmarshal(data, &highlights); err != nil {
				return fmt.Errorf("invalid highlight data: %w", err)
			}

			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			if err := srv.ImportHighlights(cmd.Context(), highlights); err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found")
				case errors.Is(err, models.ErrTimeRangeInvalid):
					return fmt.Errorf("invalid time range, nothing imported: %w", err)
				case errors.Is(err, service.ErrHighlightExists):
					return errors.New("duplicate highlight id, nothing imported")
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Imported %d highlights\n", len(highlights))
			return nil
		},
	}
}
