package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
)

// ApplicationController handles job application operations
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// ApplyJob records the caller's application
// @Summary Apply to a job
// @Description Applies the calling student to a job. Fails once the job holds 50 applications or when the caller already applied.
// @Tags job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyJobRequest true "Job to apply to"
// @Success 201 {object} dto.APIResponse "Application recorded, data carries the applicant count"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or capacity exceeded"
// @Router /job/apply-job [post]
func (c *ApplicationController) ApplyJob(ctx *gin.Context) {
	var req dto.ApplyJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	count, err := c.applicationService.Apply(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(gin.H{"jobId": req.JobID, "applicantCount": count}))
}

// WithdrawApplication removes the caller's application
// @Summary Withdraw an application
// @Description Withdraws the calling student's application from a job
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param job_id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Application withdrawn"
// @Failure 404 {object} dto.ErrorResponse "Job or application not found"
// @Router /job/withdraw-application/{job_id} [delete]
func (c *ApplicationController) WithdrawApplication(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "job_id")
	if !ok {
		return
	}

	if err := c.applicationService.Withdraw(ctx.Request.Context(), middleware.GetUserID(ctx), jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application withdrawn"))
}

// GetAppliedJobs lists the caller's applications
// @Summary List applied jobs
// @Description Lists the jobs the calling student applied to, newest first
// @Tags job
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AppliedJobResponse} "Applications"
// @Router /job/get-applied-jobs [get]
func (c *ApplicationController) GetAppliedJobs(ctx *gin.Context) {
	resp, err := c.applicationService.GetAppliedJobs(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ViewApplicants lists applicants for one of the caller's jobs
// @Summary View applicants
// @Description Lists applicants for a job the caller posted. Other jobs read as not found.
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicantResponse} "Applicants"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /job/view-applicants/{jobId} [get]
func (c *ApplicationController) ViewApplicants(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId")
	if !ok {
		return
	}

	resp, err := c.applicationService.ViewApplicants(ctx.Request.Context(), middleware.GetUserID(ctx), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
