package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// AlumniController handles alumni profile and company operations
type AlumniController struct {
	alumniService *services.AlumniService
	logger        zerolog.Logger
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService *services.AlumniService, logger zerolog.Logger) *AlumniController {
	return &AlumniController{
		alumniService: alumniService,
		logger:        logger,
	}
}

// GetProfile returns the caller's alumni profile
// @Summary Get alumni profile
// @Description Returns the calling alumni's profile including the completion score gating job posting
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AlumniProfileResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not saved yet"
// @Router /alumni/profile [get]
func (c *AlumniController) GetProfile(ctx *gin.Context) {
	resp, err := c.alumniService.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SaveProfile creates or updates the caller's alumni profile
// @Summary Save alumni profile
// @Description Creates the profile on first save and updates it afterwards
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAlumniProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.AlumniProfileResponse} "Saved profile"
// @Router /alumni/profile [put]
func (c *AlumniController) SaveProfile(ctx *gin.Context) {
	var req dto.UpdateAlumniProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.alumniService.SaveProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetCompany returns the caller's company record
// @Summary Get own company
// @Description Returns the calling alumni's company record
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse} "Company"
// @Failure 404 {object} dto.ErrorResponse "Company not saved yet"
// @Router /alumni/company [get]
func (c *AlumniController) GetCompany(ctx *gin.Context) {
	resp, err := c.alumniService.GetCompany(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SaveCompany creates or updates the caller's company record
// @Summary Save own company
// @Description Creates or updates the company record. Any edit returns it to the moderation queue.
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveCompanyRequest true "Company fields"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse} "Saved company"
// @Router /alumni/company [post]
func (c *AlumniController) SaveCompany(ctx *gin.Context) {
	var req dto.SaveCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.alumniService.SaveCompany(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListCompanies lists the approved company directory
// @Summary List companies
// @Description Lists approved companies
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Companies"
// @Router /alumni/companies [get]
func (c *AlumniController) ListCompanies(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.alumniService.ListCompanies(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
