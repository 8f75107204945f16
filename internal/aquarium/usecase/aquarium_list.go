package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

type AquariumListInput struct {
	Search    string // value already trimmed
	WaterType string // value already trimmed
	Size      int32
	Page      int32
}

type AquariumListOutput struct {
	Page      int32
	Size      int32
	Total     int64
	Aquariums []entity.Aquarium
}

func (s *Usecase) AquariumList(ctx context.Context, in AquariumListInput) (*AquariumListOutput, error) {
	ctx, span := s.startSpan(ctx, "AquariumList")
	defer span.End()

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	page := max(in.Page, 1)

	aquariums, total, err := s.repoDB.ListAquariums(ctx, entity.AquariumListFilter{
		Search:    in.Search,
		WaterType: in.WaterType,
		Offset:    (page - 1) * in.Size,
		Limit:     in.Size,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list aquariums", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AquariumListOutput{
		Page:      page,
		Size:      in.Size,
		Total:     total,
		Aquariums: aquariums,
	}, nil
}
