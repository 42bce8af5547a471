package main

import (
	"io"
	"log/slog"
	"os"
	"sync"

	exportSrv "github.com/fightlight/fightlight/internal/service/export"
	projectSrv "github.com/fightlight/fightlight/internal/service/project"
	"github.com/fightlight/fightlight/internal/storage/jsonfile"
)

const (
	defaultStatePath  = "project_state.json"
	defaultExportsDir = "exports"
)

type commandContext struct {
	stateFlag   *string
	verboseFlag *bool

	storageOnce sync.Once
	storage     *jsonfile.Storage
	storageErr  error
}

func newCommandContext(stateFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		stateFlag:   stateFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureStorage() (*jsonfile.Storage, error) {
	c.storageOnce.Do(func() {
		path := defaultStatePath
		if c.stateFlag != nil && *c.stateFlag != "" {
			path = *c.stateFlag
		}
		c.storage, c.storageErr = jsonfile.New(path)
	})
	return c.storage, c.storageErr
}

func (c *commandContext) logger() *slog.Logger {
	if c.verboseFlag != nil && *c.verboseFlag {
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c *commandContext) projectService() (*projectSrv.Project, error) {
	storage, err := c.ensureStorage()
	if err != nil {
		return nil, err
	}
	return projectSrv.New(c.logger(), storage), nil
}

func (c *commandContext) exportService() (*exportSrv.Export, error) {
	storage, err := c.ensureStorage()
	if err != nil {
		return nil, err
	}
	return exportSrv.New(c.logger(), storage, defaultExportsDir), nil
}
