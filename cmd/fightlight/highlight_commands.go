package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ptr "github.com/fightlight/fightlight/internal/lib/utils/pointers"
	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
)

func newHighlightsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "highlights",
		Short: "List all highlights in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			state, err := srv.State(cmd.Context())
			if err != nil {
				if errors.Is(err, service.ErrProjectNotFound) {
					return errors.New("no project found")
				}
				return err
			}

			if len(state.Highlights) == 0 {
				printWarn(cmd.OutOrStdout(), "No highlights found\n")
				return nil
			}

			rows := make([][]string, 0, len(state.Highlights))
			for _, h := range state.Highlights {
				selected := ""
				if state.SelectedHighlightID != nil && *state.SelectedHighlightID == h.ID {
					selected = "*"
				}
				rows = append(rows, []string{
					h.ID,
					h.Name,
					formatSeconds(h.TimeRange.Start),
					formatSeconds(h.TimeRange.End),
					formatSeconds(h.TimeRange.Duration()),
					strings.Join(h.Tags, ","),
					selected,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Start", "End", "Duration", "Tags", "Selected"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newAddHighlightCommand(ctx *commandContext) *cobra.Command {
	var desc string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <name> <start> <end>",
		Short: "Add a new highlight to the project",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad start time: %s", args[1])
			}
			end, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("bad end time: %s", args[2])
			}

			h := models.Highlight{
				Name:      args[0],
				TimeRange: models.TimeRange{Start: start, End: end},
				Tags:      tags,
			}
			if desc != "" {
				h.Description = ptr.Ptr(desc)
			}

			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			id, err := srv.AddHighlight(cmd.Context(), h)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found")
				case errors.Is(err, models.ErrTimeRangeInvalid):
					return fmt.Errorf("invalid time range: %w", err)
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Added highlight: %s (%ss - %ss) id=%s\n", args[0], args[1], args[2], id)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")

	return cmd
}

func newRemoveHighlightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a highlight by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			found, err := srv.RemoveHighlight(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, service.ErrProjectNotFound) {
					return errors.New("no project found")
				}
				return err
			}
			if !found {
				printWarn(cmd.OutOrStdout(), "Highlight not found: %s\n", args[0])
				return nil
			}

			printOk(cmd.OutOrStdout(), "Removed highlight: %s\n", args[0])
			return nil
		},
	}
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Select a highlight by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			if err := srv.SelectHighlight(cmd.Context(), args[0]); err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found")
				case errors.Is(err, service.ErrHighlightNotFound):
					return fmt.Errorf("highlight not found: %s", args[0])
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Selected highlight: %s\n", args[0])
			return nil
		},
	}
}

func newUpdateRangeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update-range <id> <start> <end>",
		Short: "Replace a highlight's time range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad start time: %s", args[1])
			}
			end, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("bad end time: %s", args[2])
			}

			r, err := models.NewTimeRange(start, end)
			if err != nil {
				return fmt.Errorf("invalid time range: %w", err)
			}

			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			if err := srv.UpdateRange(cmd.Context(), args[0], r); err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found")
				case errors.Is(err, service.ErrHighlightNotFound):
					return fmt.Errorf("highlight not found: %s", args[0])
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Updated range: %s -> [%s, %s)\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func newNudgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "nudge <id> <offset>",
		Short: "Shift a highlight's range by offset seconds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad offset: %s", args[1])
			}

			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			r, err := srv.Nudge(cmd.Context(), args[0], offset)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrProjectNotFound):
					return errors.New("no project found")
				case errors.Is(err, service.ErrHighlightNotFound):
					return fmt.Errorf("highlight not found: %s", args[0])
				case errors.Is(err, models.ErrTimeRangeInvalid):
					return fmt.Errorf("invalid nudge operation: %w", err)
				}
				return err
			}

			printOk(cmd.OutOrStdout(), "Nudged %s by %ss -> [%s, %s)\n",
				args[0], args[1], formatSeconds(r.Start), formatSeconds(r.End))
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var tags []string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Fuzzy-search highlights by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.projectService()
			if err != nil {
				return err
			}

			res, err := srv.SearchHighlights(cmd.Context(), models.HighlightFilter{
				Name:       args[0],
				Tags:       tags,
				MaxRespLen: limit,
			})
			if err != nil {
				if errors.Is(err, service.ErrProjectNotFound) {
					return errors.New("no project found")
				}
				return err
			}

			if len(res) == 0 {
				printWarn(cmd.OutOrStdout(), "No highlights found\n")
				return nil
			}

			rows := make([][]string, 0, len(res))
			for _, h := range res {
				rows = append(rows, []string{
					h.ID,
					h.Name,
					formatSeconds(h.TimeRange.Start),
					formatSeconds(h.TimeRange.End),
					strings.Join(h.Tags, ","),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Start", "End", "Tags"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "require tag (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (0 = all)")

	return cmd
}
