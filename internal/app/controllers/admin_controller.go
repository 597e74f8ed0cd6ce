package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// AdminController handles moderation and oversight operations
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListPendingAlumni lists alumni waiting for verification
// @Summary List pending alumni
// @Description Lists alumni accounts an admin has not verified yet
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingAlumniResponse} "Pending alumni"
// @Router /admin/alumni/pending [get]
func (c *AdminController) ListPendingAlumni(ctx *gin.Context) {
	resp, err := c.adminService.ListPendingAlumni(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// VerifyAlumni approves an alumni account
// @Summary Verify an alumni account
// @Description Marks the alumni account as verified and notifies its owner
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Alumni verified"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/alumni/verify/{id} [put]
func (c *AdminController) VerifyAlumni(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.VerifyAlumni(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Alumni verified"))
}

// ApproveCompany approves a company listing
// @Summary Approve a company
// @Description Moves the company to approved and notifies its owner
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company approved"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /admin/companies/{id}/approve [patch]
func (c *AdminController) ApproveCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.ApproveCompany(ctx.Request.Context(), companyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Company approved"))
}

// RejectCompany rejects a company listing
// @Summary Reject a company
// @Description Moves the company to rejected and notifies its owner
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company rejected"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /admin/companies/{id}/reject [patch]
func (c *AdminController) RejectCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.RejectCompany(ctx.Request.Context(), companyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Company rejected"))
}

// ListUsers lists user accounts
// @Summary List users
// @Description Lists user accounts with optional role filtering
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(student, alumni, admin)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var role *models.RoleType
	if raw := ctx.Query("role"); raw != "" {
		r := models.RoleType(raw)
		if r != models.RoleStudent && r != models.RoleAlumni && r != models.RoleAdmin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		role = &r
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.adminService.ListUsers(ctx.Request.Context(), role, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Description Deletes a non-admin account. Owned profiles, jobs and applications are removed with it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Target is an admin account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted"))
}

// ListJobs lists every job for oversight
// @Summary List jobs
// @Description Lists all jobs on the board
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Jobs"
// @Router /admin/jobs [get]
func (c *AdminController) ListJobs(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.adminService.ListJobs(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Notify fans a notification out to users
// @Summary Send a notification
// @Description Notifies explicit user ids, a whole role, or both
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NotifyRequest true "Notification and targets"
// @Success 200 {object} dto.APIResponse "Notification sent, data carries the targeted count"
// @Failure 400 {object} dto.ErrorResponse "No targets given"
// @Router /admin/notify [post]
func (c *AdminController) Notify(ctx *gin.Context) {
	var req dto.NotifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	targeted, err := c.adminService.Notify(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"targeted": targeted}))
}

// GetDashboard aggregates entity counts
// @Summary Admin dashboard
// @Description Returns user, company, job and application counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse} "Counts"
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	resp, err := c.adminService.GetDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
