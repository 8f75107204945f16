package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/aquarium/usecase"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
)

// HeaderIdempotencyKey makes a create request safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// HTTPEndpoint exposes HTTP handlers for the aquarium form and inventory.
type HTTPEndpoint struct {
	uc uc
}

// FieldValidate checks a single form field for live feedback.
// @Summary Validate one field
// @Description Runs the rule of one field and reports the verdict. An invalid value is still a 200 response.
// @Tags Aquarium, Form
// @Accept json
// @Produce json
// @Param request body FieldValidateRequest true "Field and raw value"
// @Success 200 {object} router.successResponse{data=FieldVerdictResponse} "Verdict"
// @Failure 400 {object} router.errorResponse "Unknown field or invalid request body"
// @Router /api/v1/aquariums/validate [post]
func (h *HTTPEndpoint) FieldValidate(r *router.Request) (any, error) {
	var req FieldValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.FieldValidate(r.Context(), usecase.FieldValidateInput{
		Field: req.Field,
		Value: req.Value,
	})
	if err != nil {
		return nil, err
	}

	out := FieldVerdictResponse{
		Field:   resp.Field.Key(),
		Valid:   resp.Valid,
		Message: resp.Message,
	}
	if !resp.Valid {
		out.Kind = resp.Kind.String()
	}

	return out, nil
}

// FormValidate checks every field of the form independently.
// @Summary Validate whole form
// @Tags Aquarium, Form
// @Accept json
// @Produce json
// @Param request body AquariumRequest true "Raw form values"
// @Success 200 {object} router.successResponse{data=FormValidateResponse} "Verdict per field"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Router /api/v1/aquariums/validate/form [post]
func (h *HTTPEndpoint) FormValidate(r *router.Request) (any, error) {
	var req AquariumRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.FormValidate(r.Context(), req.form())
	if err != nil {
		return nil, err
	}

	return FormValidateResponse{
		Valid:  resp.Valid,
		Fields: lo.Map(resp.Verdicts, func(v rule.Verdict, _ int) FieldVerdictResponse { return toVerdictResponse(v) }),
	}, nil
}

// AquariumList returns a page of aquariums.
// @Summary List aquariums
// @Tags Aquarium, Inventory
// @Produce json
// @Param search query string false "Search by name or location"
// @Param water_type query string false "Filter by water type"
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=AquariumsResponse} "Aquarium list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/aquariums [get]
func (h *HTTPEndpoint) AquariumList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AquariumList(r.Context(), usecase.AquariumListInput{
		Search:    r.GetQuery("search"),
		WaterType: r.GetQuery("water_type"),
		Size:      size,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}

	return AquariumsResponse{
		total:     resp.Total,
		size:      resp.Size,
		page:      resp.Page,
		Aquariums: toAquariumResponses(resp.Aquariums),
	}, nil
}

// @Summary Get aquarium detail
// @Tags Aquarium, Inventory
// @Produce json
// @Param id path string true "Aquarium ID (5 digits)"
// @Success 200 {object} router.successResponse{data=AquariumDetailResponse} "Aquarium detail"
// @Failure 404 {object} router.errorResponse "Aquarium not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/aquariums/{id} [get]
func (h *HTTPEndpoint) AquariumDetail(r *router.Request) (any, error) {
	resp, err := h.uc.AquariumDetail(r.Context(), usecase.AquariumDetailInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return AquariumDetailResponse{Aquarium: toAquariumResponse(resp.Aquarium)}, nil
}

// @Summary Create aquarium
// @Tags Aquarium, Inventory
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Makes the request safe to retry"
// @Param request body AquariumRequest true "Raw form values"
// @Success 201 {object} router.successResponse{data=AquariumCreateResponse} "Created aquarium"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Aquarium ID taken or request replayed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Failure 503 {object} router.errorResponse "Idempotency store unavailable"
// @Router /api/v1/aquariums [post]
func (h *HTTPEndpoint) AquariumCreate(r *router.Request) (any, error) {
	var req AquariumRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AquariumCreate(r.Context(), usecase.AquariumCreateInput{
		Form:           req.form(),
		IdempotencyKey: r.GetHeader(HeaderIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return AquariumCreateResponse{Aquarium: toAquariumResponse(resp.Aquarium)}, nil
}

// @Summary Replace aquarium
// @Description Replaces every field except the identifier.
// @Tags Aquarium, Inventory
// @Accept json
// @Produce json
// @Param id path string true "Aquarium ID (5 digits)"
// @Param request body AquariumRequest true "Raw form values"
// @Success 200 {object} router.successResponse{data=AquariumDetailResponse} "Updated aquarium"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Aquarium not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/aquariums/{id} [put]
func (h *HTTPEndpoint) AquariumUpdate(r *router.Request) (any, error) {
	var req AquariumRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AquariumUpdate(r.Context(), usecase.AquariumUpdateInput{
		ID:   r.GetParam("id"),
		Form: req.form(),
	})
	if err != nil {
		return nil, err
	}

	return AquariumDetailResponse{Aquarium: toAquariumResponse(resp.Aquarium)}, nil
}

// @Summary Patch aquarium
// @Description Changes only the supplied fields; each value must pass its rule.
// @Tags Aquarium, Inventory
// @Accept json
// @Produce json
// @Param id path string true "Aquarium ID (5 digits)"
// @Param request body AquariumPatchRequest true "Field key to raw value"
// @Success 200 {object} router.successResponse{data=AquariumDetailResponse} "Updated aquarium"
// @Failure 400 {object} router.errorResponse "Unknown field or invalid request body"
// @Failure 404 {object} router.errorResponse "Aquarium not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/aquariums/{id} [patch]
func (h *HTTPEndpoint) AquariumPatch(r *router.Request) (any, error) {
	var req AquariumPatchRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AquariumPatch(r.Context(), usecase.AquariumPatchInput{
		ID:     r.GetParam("id"),
		Fields: req,
	})
	if err != nil {
		return nil, err
	}

	return AquariumDetailResponse{Aquarium: toAquariumResponse(resp.Aquarium)}, nil
}

// @Summary Delete aquarium
// @Tags Aquarium, Inventory
// @Param id path string true "Aquarium ID (5 digits)"
// @Success 204 "No Content"
// @Failure 404 {object} router.errorResponse "Aquarium not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/aquariums/{id} [delete]
func (h *HTTPEndpoint) AquariumDelete(r *router.Request) (any, error) {
	if err := h.uc.AquariumDelete(r.Context(), usecase.AquariumDeleteInput{ID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return nil, nil
}
