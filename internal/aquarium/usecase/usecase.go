package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// RuleTag is the struct tag that routes a string field through the aquarium
// rules, e.g. `validate:"aquarium=tank_size"`.
const RuleTag = "aquarium"

type repoDB interface {
	GetAquarium(ctx context.Context, id string) (*entity.Aquarium, error)
	ListAquariums(ctx context.Context, filter entity.AquariumListFilter) ([]entity.Aquarium, int64, error)
	CreateAquarium(ctx context.Context, in entity.Aquarium) error
	UpdateAquarium(ctx context.Context, in entity.Aquarium) error
	DeleteAquarium(ctx context.Context, id string) error
}

type Usecase struct {
	repoDB    repoDB
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Idempotency idempotency.Idempotency // optional
	Validator   validator.Validator
	Config      config.Config
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

// RegisterRules installs the aquarium field rules under RuleTag.
func RegisterRules(v validator.RuleValidator) error {
	return v.RegisterRule(RuleTag, func(param, value string) (bool, string) {
		vd := rule.ValidateKey(param, value)
		return vd.OK, vd.Message
	})
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("aquarium.usecase").Start(ctx, name)
}

func (s *Usecase) idempotencyTTL() time.Duration {
	return s.cfg.GetSecond("modules.aquarium.idempotency_ttl")
}
