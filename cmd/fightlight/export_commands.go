package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fightlight/fightlight/internal/service"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export highlight clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newExportClipCommand(ctx))
	cmd.AddCommand(newExportAllCommand(ctx))

	return cmd
}

func newExportClipCommand(ctx *commandContext) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Export the selected highlight as a video clip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.exportService()
			if err != nil {
				return err
			}

			outPath, err := srv.Clip(cmd.Context(), id)
			if err != nil {
				return exportError(err)
			}

			printWarn(cmd.OutOrStdout(), "Clip export planned (cutting not implemented yet)\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "highlight id (defaults to the selected highlight)")

	return cmd
}

func newExportAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Export all highlights as separate video clips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := ctx.exportService()
			if err != nil {
				return err
			}

			outPaths, err := srv.All(cmd.Context())
			if err != nil {
				return exportError(err)
			}

			printWarn(cmd.OutOrStdout(), "Export planned for %d highlights (cutting not implemented yet)\n", len(outPaths))
			for _, p := range outPaths {
				fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", p)
			}
			return nil
		},
	}
}

func exportError(err error) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return errors.New("no project found")
	case errors.Is(err, service.ErrNoVideo):
		return errors.New("no video file loaded")
	case errors.Is(err, service.ErrNothingSelected):
		return errors.New("no highlight selected")
	case errors.Is(err, service.ErrHighlightNotFound):
		return errors.New("highlight not found")
	case errors.Is(err, service.ErrNoHighlights):
		return errors.New("no highlights to export")
	}
	return err
}
