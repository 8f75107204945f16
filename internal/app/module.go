package app

import (
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium"
)

func (a *App) initModules() error {
	if !a.config.GetBool("modules.aquarium.enabled") {
		slog.Warn("aquarium module disabled, only health endpoints are served")
		return nil
	}

	return aquarium.New(aquarium.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		Idempotency: a.idemp,
		Router:      a.router,
		Config:      a.config,
		Instrument:  a.ins,
		Clock:       a.clock,
		Validator:   a.validator,
	})
}
