package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

type (
	AquariumDetailInput struct {
		ID string
	}

	AquariumDetailOutput struct {
		Aquarium entity.Aquarium
	}
)

func (s *Usecase) AquariumDetail(ctx context.Context, in AquariumDetailInput) (*AquariumDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "AquariumDetail")
	defer span.End()

	if err := s.validator.Validate(aquariumIDInput(in)); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	aq, err := s.repoDB.GetAquarium(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "aquarium not found", "aquarium_id", in.ID)
		return nil, goerror.NewBusiness("aquarium not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get aquarium", "aquarium_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AquariumDetailOutput{Aquarium: *aq}, nil
}
