package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

type AquariumDeleteInput struct {
	ID string
}

func (s *Usecase) AquariumDelete(ctx context.Context, in AquariumDeleteInput) error {
	ctx, span := s.startSpan(ctx, "AquariumDelete")
	defer span.End()

	if err := s.validator.Validate(aquariumIDInput(in)); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteAquarium(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "aquarium not found", "aquarium_id", in.ID)
		return goerror.NewBusiness("aquarium not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete aquarium", "aquarium_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
