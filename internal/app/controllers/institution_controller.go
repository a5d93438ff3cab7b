package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/app/models/dto"
	"github.com/yigit/campusreg/internal/app/services"
	"github.com/yigit/campusreg/internal/middleware"
	"github.com/yigit/campusreg/internal/pkg/helpers"
)

// InstitutionController handles institution directory endpoints
type InstitutionController struct {
	institutionService services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService services.InstitutionService) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
	}
}

// ListInstitutions returns a page of institutions
// @Summary List institutions
// @Description Retrieves institutions in registration order, one page at a time
// @Tags institutions
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(10) maximum(100)
// @Success 200 {object} dto.APIResponse{data=[]models.Institution} "Institutions retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) ListInstitutions(ctx *gin.Context) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	institutions, err := c.institutionService.ListInstitutions(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.NewAPIResponse(institutions)
	response.Pagination = helpers.NewPaginationInfo(page, limit, len(institutions))
	ctx.JSON(http.StatusOK, response)
}

// GetInstitutionByID retrieves an institution by ID
// @Summary Get institution details
// @Description Retrieves a single institution by its ID
// @Tags institutions
// @Produce json
// @Param id path string true "Institution ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID format"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitutionByID(ctx *gin.Context) {
	id, ok := parseInstitutionID(ctx)
	if !ok {
		return
	}

	institution, err := c.institutionService.GetInstitutionByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(institution))
}

// RegisterInstitution handles institution sign-up
// @Summary Register an institution
// @Description Creates a pending institution and emails an acknowledgement
// @Tags institutions
// @Accept json
// @Produce json
// @Param request body dto.CreateInstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterInstitutionResponse} "Institution registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Name or email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [post]
func (c *InstitutionController) RegisterInstitution(ctx *gin.Context) {
	var req dto.CreateInstitutionRequest
	if !bindJSON(ctx, &req, "Invalid institution data") {
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Validation failed", fieldErrors))
		return
	}

	response, err := c.institutionService.RegisterInstitution(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(response))
}

// UpdateInstitution applies a partial update
// @Summary Update an institution
// @Description Updates the supplied fields of an institution; role and status cannot be changed here
// @Tags institutions
// @Accept json
// @Produce json
// @Param id path string true "Institution ID" Format(uuid)
// @Param request body dto.UpdateInstitutionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatedInstitutionResponse} "Institution updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Name or email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [put]
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, ok := parseInstitutionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateInstitutionRequest
	if !bindJSON(ctx, &req, "Invalid institution data") {
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Validation failed", fieldErrors))
		return
	}

	response, err := c.institutionService.UpdateInstitution(ctx.Request.Context(), id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// ReviewInstitution approves or denies a pending institution
// @Summary Review an institution
// @Description Approves or denies a pending institution and notifies it by email
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID" Format(uuid)
// @Param request body dto.ReviewInstitutionRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution reviewed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Institution already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/review [put]
func (c *InstitutionController) ReviewInstitution(ctx *gin.Context) {
	id, ok := parseInstitutionID(ctx)
	if !ok {
		return
	}

	var req dto.ReviewInstitutionRequest
	if !bindJSON(ctx, &req, "Invalid review data") {
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Validation failed", fieldErrors))
		return
	}

	institution, err := c.institutionService.ApproveOrDeny(ctx.Request.Context(), id, models.InstitutionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(institution))
}

// PromoteInstitution grants the admin role to an institution
// @Summary Promote an institution to admin
// @Description Changes the institution's role to admin; no other field changes
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution promoted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/promote [put]
func (c *InstitutionController) PromoteInstitution(ctx *gin.Context) {
	id, ok := parseInstitutionID(ctx)
	if !ok {
		return
	}

	institution, err := c.institutionService.PromoteToAdmin(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(institution))
}

// parseInstitutionID reads the :id path parameter, answering 400 when it is not a UUID
func parseInstitutionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid institution ID format").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed JSON
func bindJSON(ctx *gin.Context, obj interface{}, message string) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
