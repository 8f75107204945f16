package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
	"github.com/shandysiswandi/aquarium/internal/pkg/uid"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
)

const (
	envConfigPath     = "CONFIG_PATH"
	defaultConfigPath = "./config/config.yaml"

	driverMemory   = "memory"
	driverPostgres = "postgres"

	minStartupTimeout = 5 * time.Second
)

func (a *App) initConfig() error {
	path := os.Getenv(envConfigPath)
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		return err
	}
	a.onClose("Config", func(context.Context) error { return cfg.Close() })

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // best effort, time.Local is not reloaded anyway
		os.Setenv("TZ", tz)
	}

	a.config = cfg
	return nil
}

func (a *App) initInstrument() error {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		return err
	}
	a.onClose("Instrument", ins.Shutdown)

	a.ins = ins
	return nil
}

func (a *App) initLibraries() error {
	v, err := validator.NewV10Validator()
	if err != nil {
		return err
	}

	a.validator = v
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	return nil
}

// ping retries fn with a capped fibonacci backoff until it succeeds or
// app.startup_timeout_seconds (at least 5s) elapses.
func (a *App) ping(name string, fn func(ctx context.Context) error) error {
	timeout := max(a.config.GetSecond("app.startup_timeout_seconds"), minStartupTimeout)
	ctx, cancel := context.WithTimeout(a.ctx, timeout)
	defer cancel()

	backoff := retry.WithCappedDuration(2*time.Second, retry.NewFibonacci(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			slog.WarnContext(ctx, "dependency not ready", "name", name, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (a *App) initDatabase() error {
	driver := strings.ToLower(strings.TrimSpace(a.config.GetString("database.driver")))
	switch driver {
	case driverMemory, "":
		slog.Info("aquariums are kept in memory", "driver", driverMemory)
		return nil
	case driverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	pc, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	pc.MaxConns = a.config.GetInt32("database.pool.max_conns")
	pc.MinConns = a.config.GetInt32("database.pool.min_conns")
	pc.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	pc.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	pc.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, pc)
	if err != nil {
		return err
	}
	a.onClose("Database", func(context.Context) error {
		pool.Close()
		return nil
	})

	if err := a.ping("database", pool.Ping); err != nil {
		return err
	}

	a.dbConn = pool
	return nil
}

func (a *App) initCache() error {
	if !a.config.GetBool("redis.enabled") {
		slog.Info("redis disabled, idempotency keys are ignored")
		return nil
	}

	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	a.onClose("Redis", func(context.Context) error { return rdb.Close() })

	if err := a.ping("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() }); err != nil {
		return err
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(rdb, a.config.GetString("redis.idempotency_prefix"))
	return nil
}

func (a *App) initHTTPServer() error {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
	return nil
}
