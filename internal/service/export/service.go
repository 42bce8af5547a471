package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fightlight/fightlight/internal/lib/logger/sl"
	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
	"github.com/fightlight/fightlight/internal/storage"
)

// Export plans clip export targets for project highlights.
//
// The actual cut is not implemented: both operations only resolve and
// return the output paths the cutter will write.
type Export struct {
	log          *slog.Logger
	stateStorage StateStorage
	exportsDir   string
}

type StateStorage interface {
	Load(ctx context.Context) (models.ProjectState, error)
}

func New(
	log *slog.Logger,
	stateStorage StateStorage,
	exportsDir string,
) *Export {
	return &Export{
		log:          log,
		stateStorage: stateStorage,
		exportsDir:   exportsDir,
	}
}

// Clip plans the export of one highlight. With an empty id the
// selected highlight is used.
func (e *Export) Clip(ctx context.Context, id string) (string, error) {
	const op = "Export.Clip"

	log := e.log.With(slog.String("op", op))

	state, err := e.load(ctx)
	if err != nil {
		return "", err
	}

	if state.VideoFile == nil {
		return "", service.ErrNoVideo
	}

	var h models.Highlight
	if id == "" {
		sel := state.SelectedHighlight()
		if sel == nil {
			return "", service.ErrNothingSelected
		}
		h = *sel
	} else {
		found, err := state.Highlight(id)
		if err != nil {
			log.Warn("highlight not found", slog.String("id", id))
			return "", service.ErrHighlightNotFound
		}
		h = found
	}

	if err := os.MkdirAll(e.exportsDir, 0o755); err != nil {
		log.Error("failed to create exports dir", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// TODO: cut [h.TimeRange.Start, h.TimeRange.End) from the source
	// video with ffmpeg and write it to outPath
	outPath := e.outputPath(h)

	log.Info("export planned",
		slog.String("id", h.ID),
		slog.String("out", outPath),
	)

	return outPath, nil
}

// All plans the export of every highlight in project order.
func (e *Export) All(ctx context.Context) ([]string, error) {
	const op = "Export.All"

	log := e.log.With(slog.String("op", op))

	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	if state.VideoFile == nil {
		return nil, service.ErrNoVideo
	}
	if len(state.Highlights) == 0 {
		return nil, service.ErrNoHighlights
	}

	if err := os.MkdirAll(e.exportsDir, 0o755); err != nil {
		log.Error("failed to create exports dir", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	outPaths := make([]string, 0, len(state.Highlights))
	for _, h := range state.Highlights {
		// TODO: cut every highlight with ffmpeg once the cutter lands
		outPaths = append(outPaths, e.outputPath(h))
	}

	log.Info("export planned", slog.Int("count", len(outPaths)))

	return outPaths, nil
}

func (e *Export) outputPath(h models.Highlight) string {
	return filepath.Join(e.exportsDir, fmt.Sprintf("%s_%s.mp4", h.Name, h.ID))
}

func (e *Export) load(ctx context.Context) (models.ProjectState, error) {
	const op = "Export.load"

	state, err := e.stateStorage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			return models.ProjectState{}, service.ErrProjectNotFound
		}
		return models.ProjectState{}, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}
