package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/auth"
	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// JobService handles job board operations
type JobService struct {
	jobRepo         repositories.IJobRepository
	companyRepo     repositories.ICompanyRepository
	alumniRepo      repositories.IAlumniProfileRepository
	applicationRepo repositories.IApplicationRepository
	logger          zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo repositories.IJobRepository,
	companyRepo repositories.ICompanyRepository,
	alumniRepo repositories.IAlumniProfileRepository,
	applicationRepo repositories.IApplicationRepository,
	logger zerolog.Logger,
) *JobService {
	return &JobService{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		alumniRepo:      alumniRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// PostJob creates a job for the calling alumni. The caller needs an alumni
// profile whose completion score clears the posting gate; a placeholder
// company is created on the fly when none exists so the job always has a
// company to reference.
func (s *JobService) PostJob(ctx context.Context, userID int64, req *dto.PostJobRequest) (*dto.JobResponse, error) {
	profile, err := s.alumniRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.NewProfileIncompleteError(0)
		}
		return nil, err
	}

	company, err := s.companyRepo.EnsureForAlumni(ctx, userID)
	if err != nil {
		return nil, err
	}

	completion := auth.ProfileCompletion(profile, company)
	if !auth.CanPostJobs(completion) {
		return nil, apperrors.NewProfileIncompleteError(completion)
	}

	job := &models.Job{
		CompanyID:        company.ID,
		PostedByAlumniID: userID,
		JobTitle:         req.JobTitle,
		JobDescription:   req.JobDescription,
	}
	id, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id

	created, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Int64("userID", userID).Msg("Job posted")
	resp := dto.NewJobResponse(created, 0)
	return &resp, nil
}

// GetMyJobs lists the caller's jobs with their applicant counts
func (s *JobService) GetMyJobs(ctx context.Context, userID int64) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		count, err := s.applicationRepo.CountForJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewJobResponse(job, count))
	}
	return responses, nil
}

// GetJobByID returns the job only when the caller posted it. Jobs owned by
// others read as not found.
func (s *JobService) GetJobByID(ctx context.Context, userID, jobID int64) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByIDForOwner(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.applicationRepo.CountForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewJobResponse(job, count)
	return &resp, nil
}

// UpdateJob applies a partial update to a job the caller owns
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "update requires at least one field")
	}

	job, err := s.jobRepo.GetByIDForOwner(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.JobDescription != nil {
		job.JobDescription = *req.JobDescription
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	count, err := s.applicationRepo.CountForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", jobID).Int64("userID", userID).Msg("Job updated")
	resp := dto.NewJobResponse(job, count)
	return &resp, nil
}

// DeleteJob removes a job the caller owns. Its applications cascade-delete
// at the storage layer.
func (s *JobService) DeleteJob(ctx context.Context, userID, jobID int64) error {
	if err := s.jobRepo.Delete(ctx, jobID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("jobID", jobID).Int64("userID", userID).Msg("Job deleted")
	return nil
}

// GetAllJobsStudent lists the job board for students, enriched with company
// and poster fields. No ownership check: the board is readable by any
// authenticated student.
func (s *JobService) GetAllJobsStudent(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.ListForStudents(ctx, repositories.JobFilter{
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentJobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, dto.NewStudentJobResponse(job))
	}

	return &dto.PaginatedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetJobByIDStudent returns one enriched job for the student view
func (s *JobService) GetJobByIDStudent(ctx context.Context, jobID int64) (*dto.StudentJobResponse, error) {
	job, err := s.jobRepo.GetForStudent(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentJobResponse(job)
	return &resp, nil
}
