package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
)

// StudentController handles student profile operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetProfile returns the caller's student profile
// @Summary Get student profile
// @Description Returns the calling student's profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not saved yet"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	resp, err := c.studentService.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SaveProfile creates or updates the caller's student profile
// @Summary Save student profile
// @Description Creates the profile on first save and updates it afterwards
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Saved profile"
// @Router /student/profile [put]
func (c *StudentController) SaveProfile(ctx *gin.Context) {
	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.studentService.SaveProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UploadResume stores a resume file on the caller's profile
// @Summary Upload resume
// @Description Stores a resume (pdf, doc or docx, at most 5MB) and records its URL on the profile
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume file"
// @Success 200 {object} dto.APIResponse{data=dto.ResumeUploadResponse} "Stored resume URL"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Router /student/resume [post]
func (c *StudentController) UploadResume(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Resume file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.studentService.UploadResume(ctx.Request.Context(), middleware.GetUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetDashboard aggregates the caller's activity
// @Summary Student dashboard
// @Description Returns the caller's application count plus the newest jobs on the board
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Dashboard"
// @Router /student/dashboard [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	resp, err := c.studentService.GetDashboard(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
