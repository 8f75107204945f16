package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/aquarium/usecase"
)

type FieldValidateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type FieldVerdictResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

type FormValidateResponse struct {
	Valid  bool                   `json:"valid"`
	Fields []FieldVerdictResponse `json:"fields"`
}

// AquariumRequest carries every field as the raw text the user typed.
type AquariumRequest struct {
	ID          string `json:"identifier"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	TankSize    string `json:"tank_size"`
	WaterType   string `json:"water_type"`
	Maintenance string `json:"maintenance"`
	Temperature string `json:"temperature"`
	Feeding     string `json:"feeding"`
}

func (r AquariumRequest) form() usecase.AquariumForm {
	return usecase.AquariumForm(r)
}

// AquariumPatchRequest maps field keys to raw values.
type AquariumPatchRequest map[string]string

type AquariumResponse struct {
	ID          string    `json:"identifier"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	TankSize    float64   `json:"tank_size"`
	WaterType   string    `json:"water_type"`
	Maintenance string    `json:"maintenance"`
	Temperature float64   `json:"temperature"`
	Feeding     string    `json:"feeding"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AquariumDetailResponse struct {
	Aquarium AquariumResponse `json:"aquarium"`
}

type AquariumCreateResponse struct {
	Aquarium AquariumResponse `json:"aquarium"`
}

func (AquariumCreateResponse) StatusCode() int {
	return http.StatusCreated
}

func (AquariumCreateResponse) Message() string {
	return "Aquarium created"
}

type AquariumsResponse struct {
	Aquariums []AquariumResponse `json:"aquariums"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r AquariumsResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

func toAquariumResponse(a entity.Aquarium) AquariumResponse {
	return AquariumResponse{
		ID:          a.ID(),
		Name:        a.Name(),
		Location:    a.Location(),
		TankSize:    a.TankSize(),
		WaterType:   a.WaterType(),
		Maintenance: a.Maintenance(),
		Temperature: a.Temperature(),
		Feeding:     a.Feeding(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAquariumResponses(items []entity.Aquarium) []AquariumResponse {
	return lo.Map(items, func(a entity.Aquarium, _ int) AquariumResponse {
		return toAquariumResponse(a)
	})
}

func toVerdictResponse(v rule.Verdict) FieldVerdictResponse {
	resp := FieldVerdictResponse{
		Field:   v.Field.Key(),
		Valid:   v.OK,
		Message: v.Message,
	}
	if !v.OK {
		resp.Kind = v.Kind.String()
	}
	return resp
}
