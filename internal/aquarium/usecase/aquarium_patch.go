package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/samber/lo"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

const msgIdentifierImmutable = "Aquarium ID cannot be changed."

type (
	AquariumPatchInput struct {
		ID     string
		Fields map[string]string // field key to raw value
	}

	AquariumPatchOutput struct {
		Aquarium entity.Aquarium
	}
)

// AquariumPatch changes only the supplied fields. Every value must pass its
// rule before any of them is applied.
func (s *Usecase) AquariumPatch(ctx context.Context, in AquariumPatchInput) (*AquariumPatchOutput, error) {
	ctx, span := s.startSpan(ctx, "AquariumPatch")
	defer span.End()

	if err := s.validator.Validate(aquariumIDInput{ID: in.ID}); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if len(in.Fields) == 0 {
		return nil, goerror.NewInvalidFormat("No fields to update")
	}

	keys := lo.Keys(in.Fields)
	slices.Sort(keys)

	changes := make(map[entity.Field]string, len(keys))
	failures := make(map[string]string)
	for _, key := range keys {
		field := entity.ParseField(key)
		switch field {
		case entity.FieldUnknown:
			return nil, goerror.NewInvalidFormat("Unknown field " + key)
		case entity.FieldIdentifier:
			if in.Fields[key] != in.ID {
				failures[field.Key()] = msgIdentifierImmutable
			}
			continue
		}

		if vd := rule.Validate(field, in.Fields[key]); !vd.OK {
			failures[field.Key()] = vd.Message
			continue
		}
		changes[field] = in.Fields[key]
	}
	if len(failures) > 0 {
		return nil, goerror.NewInvalidFields(failures)
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

	aq := current.Clone()
	for field, raw := range changes {
		if err := applyField(aq, field, raw); err != nil {
			slog.ErrorContext(ctx, "failed to apply validated field", "field", field.Key(), "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	if len(changes) == 0 {
		return &AquariumPatchOutput{Aquarium: *aq}, nil
	}

	aq.UpdatedAt = s.clock.Now()
	if err := s.saveAquarium(ctx, aq); err != nil {
		return nil, err
	}

	return &AquariumPatchOutput{Aquarium: *aq}, nil
}
