package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

type (
	AquariumUpdateInput struct {
		ID   string
		Form AquariumForm // Form.ID may be empty; it defaults to ID
	}

	AquariumUpdateOutput struct {
		Aquarium entity.Aquarium
	}
)

// AquariumUpdate replaces every field except the identifier.
func (s *Usecase) AquariumUpdate(ctx context.Context, in AquariumUpdateInput) (*AquariumUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "AquariumUpdate")
	defer span.End()

	if in.Form.ID == "" {
		in.Form.ID = in.ID
	}
	if in.Form.ID != in.ID {
		return nil, goerror.NewInvalidInput(nil, entity.FieldIdentifier.Key(), msgIdentifierImmutable)
	}

	if err := s.validator.Validate(in.Form); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	current, err := s.repoDB.GetAquarium(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "aquarium not found", "aquarium_id", in.ID)
		return nil, goerror.NewBusiness("aquarium not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get aquarium", "aquarium_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	aq, err := in.Form.toAquarium()
	if err != nil {
		return nil, err
	}
	aq.CreatedAt = current.CreatedAt
	aq.UpdatedAt = s.clock.Now()

	if err := s.saveAquarium(ctx, aq); err != nil {
		return nil, err
	}

	return &AquariumUpdateOutput{Aquarium: *aq}, nil
}

func (s *Usecase) saveAquarium(ctx context.Context, aq *entity.Aquarium) error {
	err := s.repoDB.UpdateAquarium(ctx, *aq)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "aquarium removed before update", "aquarium_id", aq.ID())
		return goerror.NewBusiness("aquarium not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update aquarium", "aquarium_id", aq.ID(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
