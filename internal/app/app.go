package app

import (
	"log/slog"
	"os"

	routerApp "github.com/fightlight/fightlight/internal/app/router"
	"github.com/fightlight/fightlight/internal/lib/logger/sl"
	"github.com/fightlight/fightlight/internal/storage/jsonfile"
)

type App struct {
	Router routerApp.App
}

func New(
	log *slog.Logger,
	address string,
	statePath string,
	exportsDir string,
) *App {
	storage, err := jsonfile.New(statePath)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	routerApp := routerApp.New(
		log,
		storage,
		address,
		exportsDir,
	)

	return &App{
		Router: *routerApp,
	}
}
