package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

type (
	FieldValidateInput struct {
		Field string
		Value string
	}

	FieldValidateOutput struct {
		Field   entity.Field
		Valid   bool
		Kind    rule.Kind
		Message string
	}
)

// FieldValidate checks one field for live form feedback. An invalid value is
// reported in the output, not as an error.
func (s *Usecase) FieldValidate(ctx context.Context, in FieldValidateInput) (*FieldValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "FieldValidate")
	defer span.End()

	field := entity.ParseField(in.Field)
	if field == entity.FieldUnknown {
		slog.WarnContext(ctx, "unknown aquarium field", "field", in.Field)
		return nil, goerror.NewInvalidFormat("Unknown field " + in.Field)
	}

	vd := rule.Validate(field, in.Value)

	return &FieldValidateOutput{
		Field:   field,
		Valid:   vd.OK,
		Kind:    vd.Kind,
		Message: vd.Message,
	}, nil
}
