package inbound

import (
	"context"

	"github.com/shandysiswandi/aquarium/internal/aquarium/usecase"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
)

type uc interface {
	FieldValidate(ctx context.Context, in usecase.FieldValidateInput) (*usecase.FieldValidateOutput, error)
	FormValidate(ctx context.Context, in usecase.AquariumForm) (*usecase.FormValidateOutput, error)

	AquariumList(ctx context.Context, in usecase.AquariumListInput) (*usecase.AquariumListOutput, error)
	AquariumDetail(ctx context.Context, in usecase.AquariumDetailInput) (*usecase.AquariumDetailOutput, error)
	AquariumCreate(ctx context.Context, in usecase.AquariumCreateInput) (*usecase.AquariumCreateOutput, error)
	AquariumUpdate(ctx context.Context, in usecase.AquariumUpdateInput) (*usecase.AquariumUpdateOutput, error)
	AquariumPatch(ctx context.Context, in usecase.AquariumPatchInput) (*usecase.AquariumPatchOutput, error)
	AquariumDelete(ctx context.Context, in usecase.AquariumDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Form feedback
	r.POST("/api/v1/aquariums/validate", end.FieldValidate)
	r.POST("/api/v1/aquariums/validate/form", end.FormValidate)

	// Inventory
	r.GET("/api/v1/aquariums", end.AquariumList)
	r.POST("/api/v1/aquariums", end.AquariumCreate)
	r.GET("/api/v1/aquariums/:id", end.AquariumDetail)
	r.PUT("/api/v1/aquariums/:id", end.AquariumUpdate)
	r.PATCH("/api/v1/aquariums/:id", end.AquariumPatch)
	r.DELETE("/api/v1/aquariums/:id", end.AquariumDelete)
}
