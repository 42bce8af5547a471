package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/fightlight/fightlight/internal/lib/logger/sl"
	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
	"github.com/fightlight/fightlight/internal/storage"
)

// Project exposes every mutation and query of the project state.
// Both front-ends (CLI and web) go through it, so the state file is
// their only shared surface.
type Project struct {
	log          *slog.Logger
	stateStorage StateStorage
}

type StateStorage interface {
	Load(ctx context.Context) (models.ProjectState, error)
	Save(ctx context.Context, state models.ProjectState) error
}

func New(
	log *slog.Logger,
	stateStorage StateStorage,
) *Project {
	return &Project{
		log:          log,
		stateStorage: stateStorage,
	}
}

const generatedIDLen = 8

// Create saves a fresh project, overwriting any previous one.
func (p *Project) Create(ctx context.Context, name string) error {
	const op = "Project.Create"

	log := p.log.With(slog.String("op", op))

	state := models.NewProjectState(name)
	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("created project", slog.String("name", name))

	return nil
}

// State returns the current project state.
func (p *Project) State(ctx context.Context) (models.ProjectState, error) {
	const op = "Project.State"

	log := p.log.With(slog.String("op", op))

	state, err := p.stateStorage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			log.Warn("project not found")
			return models.ProjectState{}, service.ErrProjectNotFound
		}
		log.Error("failed to load project", sl.Err(err))
		return models.ProjectState{}, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

// ImportVideo replaces the project video reference. The file must
// exist and carry a video MIME-type; re-import overwrites the old
// reference, it never merges.
func (p *Project) ImportVideo(ctx context.Context, path string) (models.VideoFile, error) {
	const op = "Project.ImportVideo"

	log := p.log.With(slog.String("op", op))

	if _, err := os.Stat(path); err != nil {
		log.Warn("video file not found", slog.String("path", path))
		return models.VideoFile{}, service.ErrVideoNotFound
	}

	mimeType, err := mimetype.DetectFile(path)
	if err != nil {
		log.Error("failed to detect mime-type", sl.Err(err))
		return models.VideoFile{}, fmt.Errorf("%s: %w", op, err)
	}
	if !strings.HasPrefix(mimeType.String(), "video/") {
		log.Warn("unsupported mime-type",
			slog.String("path", path),
			slog.String("mime", mimeType.String()),
		)
		return models.VideoFile{}, service.ErrUnsupportedMime
	}

	video, err := models.NewVideoFile(path)
	if err != nil {
		return models.VideoFile{}, fmt.Errorf("%s: %w", op, err)
	}

	// TODO: probe duration/fps/resolution with ffprobe

	state, err := p.State(ctx)
	if err != nil {
		return models.VideoFile{}, err
	}

	state.SetVideo(video)

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return models.VideoFile{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("imported video", slog.String("path", path))

	return video, nil
}

// AddHighlight appends a highlight and returns its id. An id is
// generated when the caller does not supply one.
func (p *Project) AddHighlight(ctx context.Context, h models.Highlight) (string, error) {
	const op = "Project.AddHighlight"

	log := p.log.With(slog.String("op", op))

	r, err := models.NewTimeRange(h.TimeRange.Start, h.TimeRange.End)
	if err != nil {
		return "", err
	}
	h.TimeRange = r

	if h.ID == "" {
		h.ID = uuid.NewString()[:generatedIDLen]
	}

	state, err := p.State(ctx)
	if err != nil {
		return "", err
	}

	if err := state.AddHighlight(h); err != nil {
		if errors.Is(err, models.ErrHighlightExists) {
			log.Warn("highlight already exists", slog.String("id", h.ID))
			return "", service.ErrHighlightExists
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("added highlight",
		slog.String("id", h.ID),
		slog.String("name", h.Name),
		slog.Float64("start", h.TimeRange.Start),
		slog.Float64("end", h.TimeRange.End),
	)

	return h.ID, nil
}

// ImportHighlights appends a batch of highlights. Any invalid entry
// fails the whole batch, nothing is saved.
func (p *Project) ImportHighlights(ctx context.Context, highlights []models.Highlight) error {
	const op = "Project.ImportHighlights"

	log := p.log.With(slog.String("op", op))

	for _, h := range highlights {
		if _, err := models.NewTimeRange(h.TimeRange.Start, h.TimeRange.End); err != nil {
			log.Warn("invalid time range", slog.String("id", h.ID))
			return err
		}
	}

	state, err := p.State(ctx)
	if err != nil {
		return err
	}

	for _, h := range highlights {
		if err := state.AddHighlight(h); err != nil {
			if errors.Is(err, models.ErrHighlightExists) {
				log.Warn("highlight already exists", slog.String("id", h.ID))
				return service.ErrHighlightExists
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("imported highlights", slog.Int("count", len(highlights)))

	return nil
}

// RemoveHighlight removes a highlight by id and reports whether it
// was found. Nothing is saved when it was not.
func (p *Project) RemoveHighlight(ctx context.Context, id string) (bool, error) {
	const op = "Project.RemoveHighlight"

	log := p.log.With(slog.String("op", op))

	state, err := p.State(ctx)
	if err != nil {
		return false, err
	}

	if !state.RemoveHighlight(id) {
		log.Warn("highlight not found", slog.String("id", id))
		return false, nil
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("removed highlight", slog.String("id", id))

	return true, nil
}

// SelectHighlight marks a highlight as selected.
func (p *Project) SelectHighlight(ctx context.Context, id string) error {
	const op = "Project.SelectHighlight"

	log := p.log.With(slog.String("op", op))

	state, err := p.State(ctx)
	if err != nil {
		return err
	}

	if err := state.SelectHighlight(id); err != nil {
		if errors.Is(err, models.ErrHighlightNotFound) {
			log.Warn("highlight not found", slog.String("id", id))
			return service.ErrHighlightNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("selected highlight", slog.String("id", id))

	return nil
}

// SelectedHighlight returns the selected highlight.
func (p *Project) SelectedHighlight(ctx context.Context) (models.Highlight, error) {
	state, err := p.State(ctx)
	if err != nil {
		return models.Highlight{}, err
	}

	h := state.SelectedHighlight()
	if h == nil {
		return models.Highlight{}, service.ErrNothingSelected
	}

	return *h, nil
}

// UpdateRange replaces a highlight time range.
func (p *Project) UpdateRange(ctx context.Context, id string, r models.TimeRange) error {
	const op = "Project.UpdateRange"

	log := p.log.With(slog.String("op", op))

	state, err := p.State(ctx)
	if err != nil {
		return err
	}

	if err := state.UpdateHighlightRange(id, r); err != nil {
		if errors.Is(err, models.ErrHighlightNotFound) {
			log.Warn("highlight not found", slog.String("id", id))
			return service.ErrHighlightNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("updated range",
		slog.String("id", id),
		slog.Float64("start", r.Start),
		slog.Float64("end", r.End),
	)

	return nil
}

// Nudge shifts a highlight range by offset seconds and returns the
// resulting range.
func (p *Project) Nudge(ctx context.Context, id string, offset float64) (models.TimeRange, error) {
	const op = "Project.Nudge"

	log := p.log.With(slog.String("op", op))

	state, err := p.State(ctx)
	if err != nil {
		return models.TimeRange{}, err
	}

	if err := state.NudgeHighlight(id, offset); err != nil {
		if errors.Is(err, models.ErrHighlightNotFound) {
			log.Warn("highlight not found", slog.String("id", id))
			return models.TimeRange{}, service.ErrHighlightNotFound
		}
		return models.TimeRange{}, err
	}

	h, err := state.Highlight(id)
	if err != nil {
		return models.TimeRange{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := p.stateStorage.Save(ctx, state); err != nil {
		log.Error("failed to save project", sl.Err(err))
		return models.TimeRange{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("nudged highlight",
		slog.String("id", id),
		slog.Float64("offset", offset),
	)

	return h.TimeRange, nil
}

// SearchHighlights returns highlights filtered by tags and ranked by
// fuzzy name match.
func (p *Project) SearchHighlights(ctx context.Context, filter models.HighlightFilter) ([]models.Highlight, error) {
	state, err := p.State(ctx)
	if err != nil {
		return nil, err
	}

	ranked := filterRank(state.Highlights, filter)

	res := make([]models.Highlight, 0, len(ranked))
	for _, hr := range ranked {
		res = append(res, hr.highlight)
	}

	if filter.MaxRespLen > 0 && len(res) > filter.MaxRespLen {
		res = res[:filter.MaxRespLen]
	}

	return res, nil
}
