package aquarium

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/inbound"
	"github.com/shandysiswandi/aquarium/internal/aquarium/outbound/db"
	"github.com/shandysiswandi/aquarium/internal/aquarium/outbound/memory"
	"github.com/shandysiswandi/aquarium/internal/aquarium/usecase"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	DBConn      *pgxpool.Pool // nil selects the in-memory repository
	Idempotency idempotency.Idempotency
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.RuleValidator    `validate:"required"`
}

type repository interface {
	GetAquarium(ctx context.Context, id string) (*entity.Aquarium, error)
	ListAquariums(ctx context.Context, filter entity.AquariumListFilter) ([]entity.Aquarium, int64, error)
	CreateAquarium(ctx context.Context, in entity.Aquarium) error
	UpdateAquarium(ctx context.Context, in entity.Aquarium) error
	DeleteAquarium(ctx context.Context, id string) error
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	if err := usecase.RegisterRules(dep.Validator); err != nil {
		return err
	}

	var repo repository
	if dep.DBConn != nil {
		dbRepo := db.NewDB(dep.DBConn, dep.Instrument)
		if dep.Config.GetBool("modules.aquarium.migrate") {
			if err := dbRepo.EnsureSchema(dep.Ctx); err != nil {
				return err
			}
		}
		repo = dbRepo
	} else {
		slog.Warn("aquarium module uses the in-memory repository; records are lost on restart")
		repo = memory.NewMemory()
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      repo,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
