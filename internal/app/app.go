package app

import (
	"context"

	"log/slog"

	"github.com/hachimada/soothsayer/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  logger.New(name, cfg.Log),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running soothsayer")

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return err
	}

	return a.runServices(ctx, deps)
}
