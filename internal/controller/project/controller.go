package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
)

// New returns fiber app handling project state requests
func New(srvProject Project) *fiber.App {
	projectCtr := projectController{
		srv: srvProject,
	}

	app := fiber.New()

	app.Get("/state", projectCtr.state)
	app.Post("/new", projectCtr.newProject)

	app.Post("/import/video", projectCtr.importVideo)
	app.Post("/import/highlights", projectCtr.importHighlights)

	app.Get("/highlights", projectCtr.searchHighlights)
	app.Post("/highlights", projectCtr.newHighlight)
	app.Delete("/highlight/:id", projectCtr.deleteHighlight)

	app.Post("/select", projectCtr.selectHighlight)
	app.Post("/update-range", projectCtr.updateRange)
	app.Post("/nudge", projectCtr.nudge)

	return app
}

type projectController struct {
	srv Project
}

type Project interface {
	Create(ctx context.Context, name string) error
	State(ctx context.Context) (models.ProjectState, error)
	ImportVideo(ctx context.Context, path string) (models.VideoFile, error)
	ImportHighlights(ctx context.Context, highlights []models.Highlight) error
	AddHighlight(ctx context.Context, h models.Highlight) (string, error)
	RemoveHighlight(ctx context.Context, id string) (bool, error)
	SelectHighlight(ctx context.Context, id string) error
	SelectedHighlight(ctx context.Context) (models.Highlight, error)
	UpdateRange(ctx context.Context, id string, r models.TimeRange) error
	Nudge(ctx context.Context, id string, offset float64) (models.TimeRange, error)
	SearchHighlights(ctx context.Context, filter models.HighlightFilter) ([]models.Highlight, error)
}

// state returns the whole project document.
func (projectCtr *projectController) state(c *fiber.Ctx) error {
	state, err := projectCtr.srv.State(context.TODO())
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project state found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"project": state,
	})
}

// newProject creates a fresh project.
func (projectCtr *projectController) newProject(c *fiber.Ctx) error {
	var request struct {
		Name string `json:"name"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if request.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name required",
		})
	}

	if err := projectCtr.srv.Create(context.TODO(), request.Name); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// importVideo sets the project video by path.
func (projectCtr *projectController) importVideo(c *fiber.Ctx) error {
	var request struct {
		Path string `json:"path"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if request.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "video path is required",
		})
	}

	video, err := projectCtr.srv.ImportVideo(context.TODO(), request.Path)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		case errors.Is(err, service.ErrVideoNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "video file not found",
			})
		case errors.Is(err, service.ErrUnsupportedMime):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unsupported mime-type",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"video": video,
	})
}

// importHighlights appends a batch of highlights.
func (projectCtr *projectController) importHighlights(c *fiber.Ctx) error {
	var request struct {
		Highlights []models.Highlight `json:"highlights"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid highlight data",
		})
	}

	if len(request.Highlights) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no highlights",
		})
	}

	if err := projectCtr.srv.ImportHighlights(context.TODO(), request.Highlights); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		case errors.Is(err, models.ErrTimeRangeInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid time range",
			})
		case errors.Is(err, service.ErrHighlightExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "highlight already exists",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"imported": len(request.Highlights),
	})
}

// searchHighlights returns highlights filtered and sorted
// by query criteria.
func (projectCtr *projectController) searchHighlights(c *fiber.Ctx) error {
	var tags []string
	if s := c.Query("tags"); s != "" {
		tags = strings.Split(s, ",")
	}

	filter := models.HighlightFilter{
		Name:       c.Query("name"),
		Tags:       tags,
		MaxRespLen: c.QueryInt("res_len"),
	}

	highlights, err := projectCtr.srv.SearchHighlights(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"highlights": highlights,
	})
}

// newHighlight adds one highlight.
func (projectCtr *projectController) newHighlight(c *fiber.Ctx) error {
	var request struct {
		Highlight models.Highlight `json:"highlight"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid highlight data",
		})
	}

	if request.Highlight.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name required",
		})
	}

	id, err := projectCtr.srv.AddHighlight(context.TODO(), request.Highlight)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		case errors.Is(err, models.ErrTimeRangeInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid time range",
			})
		case errors.Is(err, service.ErrHighlightExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "highlight already exists",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": id,
	})
}

// deleteHighlight removes highlight by id.
func (projectCtr *projectController) deleteHighlight(c *fiber.Ctx) error {
	id := c.Params("id")

	found, err := projectCtr.srv.RemoveHighlight(context.TODO(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "highlight not found",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// selectHighlight marks a highlight as selected.
func (projectCtr *projectController) selectHighlight(c *fiber.Ctx) error {
	var request struct {
		HighlightID string `json:"highlight_id"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if request.HighlightID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "highlight_id is required",
		})
	}

	if err := projectCtr.srv.SelectHighlight(context.TODO(), request.HighlightID); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no project loaded",
			})
		case errors.Is(err, service.ErrHighlightNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "highlight not found",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"selected_id": request.HighlightID,
	})
}

// updateRange replaces the time range of the selected highlight.
func (projectCtr *projectController) updateRange(c *fiber.Ctx) error {
	var request struct {
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if request.Start == nil || request.End == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start and end times are required",
		})
	}

	r, err := models.NewTimeRange(*request.Start, *request.End)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid time range",
		})
	}

	selected, err := projectCtr.srv.SelectedHighlight(context.TODO())
	if err != nil {
		return projectCtr.selectionError(c, err)
	}

	if err := projectCtr.srv.UpdateRange(context.TODO(), selected.ID, r); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"time_range": r,
	})
}

// nudge shifts the selected highlight by an offset.
func (projectCtr *projectController) nudge(c *fiber.Ctx) error {
	var request struct {
		Offset *float64 `json:"offset"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	// default 1 second nudge
	offset := 1.0
	if request.Offset != nil {
		offset = *request.Offset
	}

	selected, err := projectCtr.srv.SelectedHighlight(context.TODO())
	if err != nil {
		return projectCtr.selectionError(c, err)
	}

	r, err := projectCtr.srv.Nudge(context.TODO(), selected.ID, offset)
	if err != nil {
		if errors.Is(err, models.ErrTimeRangeInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid nudge operation",
			})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"time_range": r,
	})
}

func (projectCtr *projectController) selectionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no project loaded",
		})
	case errors.Is(err, service.ErrNothingSelected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no highlight selected",
		})
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}
