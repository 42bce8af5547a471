package tests

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/tests/suite"
)

func randomHighlight(id string) models.Highlight {
	start := float64(gofakeit.Number(0, 1000))
	r, _ := models.NewTimeRange(start, start+float64(gofakeit.Number(1, 60)))

	return models.Highlight{
		ID:        id,
		Name:      gofakeit.HipsterWord(),
		TimeRange: r,
		Tags:      []string{"round1"},
	}
}

func TestStateWithoutProject(t *testing.T) {
	_, e := suite.New(t)

	e.GET("/project/state").
		Expect().
		Status(404).
		JSON().
		Path("$.error").
		String().
		IsEqual("no project state found")
}

func TestCreateProjectAndState(t *testing.T) {
	_, e := suite.New(t)

	name := gofakeit.Sentence(2)

	e.POST("/project/new").
		WithJSON(map[string]string{"name": name}).
		Expect().
		Status(200)

	obj := e.GET("/project/state").
		Expect().
		Status(200).
		JSON().
		Path("$.project").
		Object()

	obj.Value("project_name").String().IsEqual(name)
	obj.Value("video_file").IsNull()
	obj.Value("highlights").Array().IsEmpty()
	obj.Value("selected_highlight_id").IsNull()
}

func TestHighlightLifecycle(t *testing.T) {
	_, e := suite.New(t)

	e.POST("/project/new").
		WithJSON(map[string]string{"name": "Fight Night"}).
		Expect().
		Status(200)

	// add with caller-supplied id
	e.POST("/project/highlights").
		WithJSON(map[string]any{"highlight": randomHighlight("h1")}).
		Expect().
		Status(200).
		JSON().
		Path("$.id").
		String().
		IsEqual("h1")

	// duplicate id rejected
	e.POST("/project/highlights").
		WithJSON(map[string]any{"highlight": randomHighlight("h1")}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").
		String().
		IsEqual("highlight already exists")

	// select, then inspect state
	e.POST("/project/select").
		WithJSON(map[string]string{"highlight_id": "h1"}).
		Expect().
		Status(200)

	e.GET("/project/state").
		Expect().
		Status(200).
		JSON().
		Path("$.project.selected_highlight_id").
		String().
		IsEqual("h1")

	// selecting a missing id fails
	e.POST("/project/select").
		WithJSON(map[string]string{"highlight_id": "ghost"}).
		Expect().
		Status(404).
		JSON().
		Path("$.error").
		String().
		IsEqual("highlight not found")

	// removing the selected highlight clears the selection
	e.DELETE("/project/highlight/h1").
		Expect().
		Status(200)

	e.GET("/project/state").
		Expect().
		Status(200).
		JSON().
		Path("$.project.selected_highlight_id").
		IsNull()

	e.DELETE("/project/highlight/h1").
		Expect().
		Status(404)
}

func TestUpdateRangeAndNudge(t *testing.T) {
	_, e := suite.New(t)

	e.POST("/project/new").
		WithJSON(map[string]string{"name": "Fight Night"}).
		Expect().
		Status(200)

	h := randomHighlight("h1")
	h.TimeRange = models.TimeRange{Start: 10, End: 20}

	e.POST("/project/highlights").
		WithJSON(map[string]any{"highlight": h}).
		Expect().
		Status(200)

	// range operations require a selection
	e.POST("/project/update-range").
		WithJSON(map[string]float64{"start": 1, "end": 2}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").
		String().
		IsEqual("no highlight selected")

	e.POST("/project/select").
		WithJSON(map[string]string{"highlight_id": "h1"}).
		Expect().
		Status(200)

	e.POST("/project/update-range").
		WithJSON(map[string]float64{"start": 10, "end": 20}).
		Expect().
		Status(200)

	// inverted range rejected
	e.POST("/project/update-range").
		WithJSON(map[string]float64{"start": 20, "end": 10}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").
		String().
		IsEqual("invalid time range")

	// nudge back past zero clamps the start
	obj := e.POST("/project/nudge").
		WithJSON(map[string]float64{"offset": -15}).
		Expect().
		Status(200).
		JSON().
		Path("$.time_range").
		Object()

	obj.Value("start").Number().IsEqual(0)
	obj.Value("end").Number().IsEqual(5)

	// nudge that collapses the range fails
	e.POST("/project/nudge").
		WithJSON(map[string]float64{"offset": -15}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").
		String().
		IsEqual("invalid nudge operation")
}

func TestImportHighlightsBatch(t *testing.T) {
	_, e := suite.New(t)

	e.POST("/project/new").
		WithJSON(map[string]string{"name": "Fight Night"}).
		Expect().
		Status(200)

	e.POST("/project/import/highlights").
		WithJSON(map[string]any{"highlights": []models.Highlight{
			randomHighlight("h1"),
			randomHighlight("h2"),
		}}).
		Expect().
		Status(200).
		JSON().
		Path("$.imported").
		Number().
		IsEqual(2)

	// duplicate inside the batch fails atomically
	e.POST("/project/import/highlights").
		WithJSON(map[string]any{"highlights": []models.Highlight{
			randomHighlight("h3"),
			randomHighlight("h3"),
		}}).
		Expect().
		Status(400)

	// a missing time_range decodes to a zero range and must be
	// rejected before anything is saved
	e.POST("/project/import/highlights").
		WithJSON(map[string]any{"highlights": []any{
			map[string]any{"id": "h4", "name": "no range"},
		}}).
		Expect().
		Status(400).
		JSON().
		Path("$.error").
		String().
		IsEqual("invalid time range")

	e.GET("/project/state").
		Expect().
		Status(200).
		JSON().
		Path("$.project.highlights").
		Array().
		Length().
		IsEqual(2)
}

func TestSearchHighlights(t *testing.T) {
	_, e := suite.New(t)

	e.POST("/project/new").
		WithJSON(map[string]string{"name": "Fight Night"}).
		Expect().
		Status(200)

	for id, name := range map[string]string{
		"h1": "jab",
		"h2": "uppercut",
	} {
		h := randomHighlight(id)
		h.Name = name
		e.POST("/project/highlights").
			WithJSON(map[string]any{"highlight": h}).
			Expect().
			Status(200)
	}

	res := e.GET("/project/highlights").
		WithQuery("name", "jab").
		WithQuery("res_len", 1).
		Expect().
		Status(200).
		JSON().
		Path("$.highlights").
		Array()

	res.Length().IsEqual(1)
	res.Value(0).Object().Value("name").String().IsEqual("jab")
}

func TestIndexPage(t *testing.T) {
	_, e := suite.New(t)

	e.GET("/").
		Expect().
		Status(200).
		Body().
		Contains("No project loaded")

	e.POST("/project/new").
		WithJSON(map[string]string{"name": "Fight Night"}).
		Expect().
		Status(200)

	e.GET("/").
		Expect().
		Status(200).
		Body().
		Contains("Fight Night")
}
