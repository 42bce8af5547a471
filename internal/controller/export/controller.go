package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fightlight/fightlight/internal/service"
)

// New returns fiber app handling export requests.
//
// Cutting is not implemented yet, responses carry the planned
// output paths only.
func New(srvExport Export) *fiber.App {
	exportCtr := exportController{
		srv: srvExport,
	}

	app := fiber.New()

	app.Post("/clip", exportCtr.clip)
	app.Post("/all", exportCtr.all)

	return app
}

type exportController struct {
	srv Export
}

type Export interface {
	Clip(ctx context.Context, id string) (string, error)
	All(ctx context.Context) ([]string, error)
}

// clip plans export of one highlight (the selected one unless an id
// is passed).
func (exportCtr *exportController) clip(c *fiber.Ctx) error {
	var request struct {
		HighlightID string `json:"highlight_id"`
	}

	// empty body means "export selection"
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
	}

	outPath, err := exportCtr.srv.Clip(context.TODO(), request.HighlightID)
	if err != nil {
		return exportCtr.exportError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "clip export planned",
		"output_path": outPath,
	})
}

// all plans export of every highlight.
func (exportCtr *exportController) all(c *fiber.Ctx) error {
	outPaths, err := exportCtr.srv.All(context.TODO())
	if err != nil {
		return exportCtr.exportError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "export planned",
		"output_paths": outPaths,
	})
}

func (exportCtr *exportController) exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no project loaded",
		})
	case errors.Is(err, service.ErrNoVideo):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no video file loaded",
		})
	case errors.Is(err, service.ErrNothingSelected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no highlight selected",
		})
	case errors.Is(err, service.ErrHighlightNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "highlight not found",
		})
	case errors.Is(err, service.ErrNoHighlights):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no highlights to export",
		})
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}
