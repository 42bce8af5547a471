package router

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fightlight/fightlight/internal/storage/jsonfile"

	exportSrv "github.com/fightlight/fightlight/internal/service/export"
	projectSrv "github.com/fightlight/fightlight/internal/service/project"

	exportCtr "github.com/fightlight/fightlight/internal/controller/export"
	projectCtr "github.com/fightlight/fightlight/internal/controller/project"
	uiCtr "github.com/fightlight/fightlight/internal/controller/ui"
)

type App struct {
	log     *slog.Logger
	address string
	app     *fiber.App
}

// New returns configured router.App
func New(
	log *slog.Logger,
	storage *jsonfile.Storage,
	address string,
	exportsDir string,
) *App {
	// Create services
	project := projectSrv.New(
		log,
		storage,
	)

	export := exportSrv.New(
		log,
		storage,
		exportsDir,
	)

	app := fiber.New()

	// Mount controllers to an app
	app.Mount("/project", projectCtr.New(project))
	app.Mount("/export", exportCtr.New(export))
	app.Mount("/", uiCtr.New(project))

	return &App{
		log:     log,
		address: address,
		app:     app,
	}
}

// Fiber exposes the underlying fiber app for in-process tests.
func (a *App) Fiber() *fiber.App {
	return a.app
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	return a.app.Listen(a.address)
}

func (a *App) Stop() {
	a.app.Shutdown()
}
