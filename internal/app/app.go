package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
	"github.com/shandysiswandi/aquarium/internal/pkg/uid"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App owns the aquarium service: its configuration, shared libraries, external
// connections and the HTTP server.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config config.Config
	ins    instrument.Instrumentation

	validator validator.RuleValidator
	clock     clock.Clocker
	uuid      uid.StringID

	dbConn    *pgxpool.Pool // nil when database.driver is memory
	cacheConn *redis.Client // nil when redis.enabled is false
	idemp     idempotency.Idempotency

	router     *router.Router
	httpServer *http.Server

	// closers are released in reverse registration order.
	closers []closer
}

// New builds the application. A failing step releases whatever was already
// acquired and reports which step failed.
func New() (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{ctx: ctx, cancel: cancel}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", a.initConfig},
		{"instrument", a.initInstrument},
		{"libraries", a.initLibraries},
		{"database", a.initDatabase},
		{"cache", a.initCache},
		{"http server", a.initHTTPServer},
		{"modules", a.initModules},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			a.release(context.Background())
			cancel()
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	return a, nil
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *App) release(ctx context.Context) {
	for _, c := range slices.Backward(a.closers) {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}
	a.closers = nil
}
