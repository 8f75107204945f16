package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
)

type (
	AquariumCreateInput struct {
		Form           AquariumForm
		IdempotencyKey string // value already trimmed
	}

	AquariumCreateOutput struct {
		Aquarium entity.Aquarium
	}
)

func (s *Usecase) AquariumCreate(ctx context.Context, in AquariumCreateInput) (*AquariumCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AquariumCreate")
	defer span.End()

	if err := s.validator.Validate(in.Form); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	aq, err := in.Form.toAquarium()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	aq.CreatedAt = now
	aq.UpdatedAt = now

	var (
		repoErr error
		created bool
	)
	create := func(ctx context.Context) error {
		repoErr = s.repoDB.CreateAquarium(ctx, *aq)
		created = repoErr == nil
		return repoErr
	}

	if in.IdempotencyKey == "" || s.idemp == nil {
		err = create(ctx)
	} else {
		err = s.idemp.Exec(ctx, "aquarium:create:"+in.IdempotencyKey, create,
			idempotency.WithStateTTL(s.idempotencyTTL()))
	}

	switch {
	case err == nil:
		return &AquariumCreateOutput{Aquarium: *aq}, nil

	case created:
		// the record is stored; only recording the key as completed failed.
		slog.ErrorContext(ctx, "failed to mark idempotent aquarium create completed",
			"aquarium_id", aq.ID(), "idempotency_key", in.IdempotencyKey, "error", err)
		return &AquariumCreateOutput{Aquarium: *aq}, nil

	case errors.Is(repoErr, goerror.ErrConflict):
		slog.WarnContext(ctx, "aquarium already exists", "aquarium_id", aq.ID())
		return nil, goerror.NewBusiness("aquarium with that ID already exists", goerror.CodeConflict)

	case repoErr != nil:
		slog.ErrorContext(ctx, "failed to repo create aquarium", "aquarium_id", aq.ID(), "error", err)
		return nil, goerror.NewServer(err)

	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "aquarium create already in progress", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("request with that idempotency key is in progress", goerror.CodeConflict)

	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "aquarium create replayed", "idempotency_key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewBusiness("request with that idempotency key was already processed", goerror.CodeConflict)

	default:
		slog.ErrorContext(ctx, "failed to run idempotent aquarium create", "idempotency_key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewBusiness("service temporarily unavailable", goerror.CodeUnavailable)
	}
}
