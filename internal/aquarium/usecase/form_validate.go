package usecase

import (
	"context"

	"github.com/samber/lo"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
)

type FormValidateOutput struct {
	Valid    bool
	Verdicts []rule.Verdict // one per field, in form order
}

// FormValidate runs every field rule independently; one failing field does
// not stop the others.
func (s *Usecase) FormValidate(ctx context.Context, in AquariumForm) (*FormValidateOutput, error) {
	_, span := s.startSpan(ctx, "FormValidate")
	defer span.End()

	verdicts := lo.Map(entity.Fields, func(f entity.Field, _ int) rule.Verdict {
		return rule.Validate(f, in.Value(f))
	})

	return &FormValidateOutput{
		Valid:    lo.EveryBy(verdicts, func(v rule.Verdict) bool { return v.OK }),
		Verdicts: verdicts,
	}, nil
}
