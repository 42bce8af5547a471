package service_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
	projectSrv "github.com/fightlight/fightlight/internal/service/project"
	"github.com/fightlight/fightlight/internal/storage/jsonfile"
)

func newService(t *testing.T) *projectSrv.Project {
	t.Helper()

	st, err := jsonfile.New(filepath.Join(t.TempDir(), "project_state.json"))
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return projectSrv.New(log, st)
}

func TestStateWithoutProject(t *testing.T) {
	srv := newService(t)

	_, err := srv.State(context.Background())
	require.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestCreateAndState(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	state, err := srv.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fight Night", state.ProjectName)
	assert.Empty(t, state.Highlights)
	assert.Nil(t, state.VideoFile)
	assert.Nil(t, state.SelectedHighlightID)
}

func TestAddHighlightGeneratesID(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	id, err := srv.AddHighlight(ctx, models.Highlight{
		Name:      "Jab",
		TimeRange: models.TimeRange{Start: 5, End: 15},
	})
	require.NoError(t, err)
	assert.Len(t, id, 8)

	state, err := srv.State(ctx)
	require.NoError(t, err)
	require.Len(t, state.Highlights, 1)
	assert.Equal(t, id, state.Highlights[0].ID)
}

func TestAddHighlightValidation(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	_, err := srv.AddHighlight(ctx, models.Highlight{
		Name:      "broken",
		TimeRange: models.TimeRange{Start: 20, End: 10},
	})
	require.ErrorIs(t, err, models.ErrTimeRangeInvalid)

	_, err = srv.AddHighlight(ctx, models.Highlight{
		ID: "h1", Name: "Jab", TimeRange: models.TimeRange{Start: 5, End: 15},
	})
	require.NoError(t, err)

	_, err = srv.AddHighlight(ctx, models.Highlight{
		ID: "h1", Name: "again", TimeRange: models.TimeRange{Start: 1, End: 2},
	})
	require.ErrorIs(t, err, service.ErrHighlightExists)
}

func TestSelectRemoveFlow(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))
	_, err := srv.AddHighlight(ctx, models.Highlight{
		ID: "h1", Name: "Jab", TimeRange: models.TimeRange{Start: 5, End: 15},
	})
	require.NoError(t, err)

	require.ErrorIs(t, srv.SelectHighlight(ctx, "missing"), service.ErrHighlightNotFound)
	require.NoError(t, srv.SelectHighlight(ctx, "h1"))

	h, err := srv.SelectedHighlight(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jab", h.Name)

	found, err := srv.RemoveHighlight(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, found)

	_, err = srv.SelectedHighlight(ctx)
	require.ErrorIs(t, err, service.ErrNothingSelected)

	found, err = srv.RemoveHighlight(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateRangeAndNudge(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))
	_, err := srv.AddHighlight(ctx, models.Highlight{
		ID: "h1", Name: "Jab", TimeRange: models.TimeRange{Start: 10, End: 20},
	})
	require.NoError(t, err)

	r, err := models.NewTimeRange(12, 25)
	require.NoError(t, err)
	require.NoError(t, srv.UpdateRange(ctx, "h1", r))

	nudged, err := srv.Nudge(ctx, "h1", -15)
	require.NoError(t, err)
	assert.Equal(t, models.TimeRange{Start: 0, End: 10}, nudged)

	_, err = srv.Nudge(ctx, "missing", 1)
	require.ErrorIs(t, err, service.ErrHighlightNotFound)
}

func TestImportHighlightsAtomicBatch(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	err := srv.ImportHighlights(ctx, []models.Highlight{
		{ID: "h1", Name: "a", TimeRange: models.TimeRange{Start: 0, End: 1}},
		{ID: "h1", Name: "dup", TimeRange: models.TimeRange{Start: 2, End: 3}},
	})
	require.ErrorIs(t, err, service.ErrHighlightExists)

	state, err := srv.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Highlights)
}

func TestImportHighlightsRejectsInvalidRange(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	err := srv.ImportHighlights(ctx, []models.Highlight{
		{ID: "h1", Name: "a", TimeRange: models.TimeRange{Start: 0, End: 1}},
		{ID: "h2", Name: "broken", TimeRange: models.TimeRange{Start: 20, End: 10}},
	})
	require.ErrorIs(t, err, models.ErrTimeRangeInvalid)

	state, err := srv.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Highlights)
}

func TestSearchHighlights(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))
	for _, h := range []models.Highlight{
		{ID: "h1", Name: "uppercut", TimeRange: models.TimeRange{Start: 0, End: 1}},
		{ID: "h2", Name: "jab combo", TimeRange: models.TimeRange{Start: 2, End: 3}, Tags: []string{"combo"}},
		{ID: "h3", Name: "jab", TimeRange: models.TimeRange{Start: 4, End: 5}},
	} {
		_, err := srv.AddHighlight(ctx, h)
		require.NoError(t, err)
	}

	res, err := srv.SearchHighlights(ctx, models.HighlightFilter{Name: "jab"})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "h3", res[0].ID)

	res, err = srv.SearchHighlights(ctx, models.HighlightFilter{Name: "jab", MaxRespLen: 1})
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = srv.SearchHighlights(ctx, models.HighlightFilter{Tags: []string{"combo"}})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "h2", res[0].ID)
}

func TestImportVideo(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()

	require.NoError(t, srv.Create(ctx, "Fight Night"))

	_, err := srv.ImportVideo(ctx, filepath.Join(t.TempDir(), "nope.mp4"))
	require.ErrorIs(t, err, service.ErrVideoNotFound)

	textFile := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("not a video"), 0o644))

	_, err = srv.ImportVideo(ctx, textFile)
	require.ErrorIs(t, err, service.ErrUnsupportedMime)

	// minimal mp4: size box + "ftypisom" brand is enough for sniffing
	videoFile := filepath.Join(t.TempDir(), "fight.mp4")
	mp4Header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	}
	require.NoError(t, os.WriteFile(videoFile, mp4Header, 0o644))

	v, err := srv.ImportVideo(ctx, videoFile)
	require.NoError(t, err)
	assert.Equal(t, videoFile, v.Path)
	assert.Nil(t, v.Duration)

	state, err := srv.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.VideoFile)
	assert.Equal(t, videoFile, state.VideoFile.Path)
}
