package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// JobController handles job board operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// PostJob creates a job posting
// @Summary Post a job
// @Description Creates a job for the calling alumni. Requires a profile-completion score of at least 70.
// @Tags job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostJobRequest true "Job fields"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse} "Job created"
// @Failure 403 {object} dto.ErrorResponse "Profile incomplete, response carries the computed percentage"
// @Router /job/post-job [post]
func (c *JobController) PostJob(ctx *gin.Context) {
	var req dto.PostJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.jobService.PostJob(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetMyJobs lists the caller's job postings
// @Summary List own jobs
// @Description Lists the calling alumni's jobs with applicant counts
// @Tags job
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.JobResponse} "Jobs"
// @Router /job/get-my-jobs [get]
func (c *JobController) GetMyJobs(ctx *gin.Context) {
	resp, err := c.jobService.GetMyJobs(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetJobByID returns one of the caller's jobs
// @Summary Get own job by id
// @Description Returns the job only when the caller posted it; other jobs read as not found
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /job/get-job-by-id/{id} [get]
func (c *JobController) GetJobByID(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.jobService.GetJobByID(ctx.Request.Context(), middleware.GetUserID(ctx), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateJob applies a partial update to one of the caller's jobs
// @Summary Update own job
// @Description Patches title and/or description of a job the caller posted. An empty patch is rejected.
// @Tags job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Updated job"
// @Failure 400 {object} dto.ErrorResponse "Empty patch"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /job/update-job/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.jobService.UpdateJob(ctx.Request.Context(), middleware.GetUserID(ctx), jobID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteJob deletes one of the caller's jobs
// @Summary Delete own job
// @Description Deletes a job the caller posted. Its applications cascade-delete.
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Job deleted"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /job/delete-job/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), middleware.GetUserID(ctx), jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Job deleted"))
}

// GetAllJobsStudent lists the job board for students
// @Summary Browse the job board
// @Description Lists all jobs enriched with company and poster fields. Supports search and pagination.
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match against title or description"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Jobs"
// @Router /job/get-all-jobs-student [get]
func (c *JobController) GetAllJobsStudent(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.jobService.GetAllJobsStudent(ctx.Request.Context(), ctx.Query("search"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetJobByIDStudent returns one job for the student view
// @Summary Get a job from the board
// @Description Returns one job enriched with company and poster fields. No ownership check.
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentJobResponse} "Job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /job/get-job-by-id-student/{id} [get]
func (c *JobController) GetJobByIDStudent(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.jobService.GetJobByIDStudent(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// parseIDParam reads a positive integer path parameter, writing a 400
// response when it is malformed
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
