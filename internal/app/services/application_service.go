package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/auth"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

// ApplicationService handles job applications
type ApplicationService struct {
	applicationRepo repositories.IApplicationRepository
	jobRepo         repositories.IJobRepository
	studentRepo     repositories.IStudentProfileRepository
	authz           *auth.AuthorizationService
	notifier        Notifier
	logger          zerolog.Logger
}

// Notifier delivers a notification to a single user. The notification
// service satisfies it; tests swap in a recorder.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, title, body string) error
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repositories.IApplicationRepository,
	jobRepo repositories.IJobRepository,
	studentRepo repositories.IStudentProfileRepository,
	authz *auth.AuthorizationService,
	notifier Notifier,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		studentRepo:     studentRepo,
		authz:           authz,
		notifier:        notifier,
		logger:          logger,
	}
}

// Apply records the caller's application to a job. When the request does not
// carry a resume URL, the one on the student's profile is used. The poster
// is notified after the application commits.
func (s *ApplicationService) Apply(ctx context.Context, userID int64, req *dto.ApplyJobRequest) (int, error) {
	resumeURL := req.ResumeURL
	if resumeURL == nil {
		profile, err := s.studentRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
			return 0, err
		}
		if profile != nil {
			resumeURL = profile.ResumeURL
		}
	}

	count, err := s.applicationRepo.Apply(ctx, req.JobID, userID, resumeURL)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("jobID", req.JobID).
		Int64("userID", userID).
		Int("applicantCount", count).
		Msg("Application recorded")

	if job, err := s.jobRepo.GetByID(ctx, req.JobID); err == nil {
		notifyErr := s.notifier.NotifyUser(ctx, job.PostedByAlumniID,
			"New applicant",
			fmt.Sprintf("Your job %q has a new applicant.", job.JobTitle))
		if notifyErr != nil {
			s.logger.Warn().Err(notifyErr).Int64("jobID", req.JobID).Msg("Failed to notify poster")
		}
	}

	return count, nil
}

// Withdraw removes the caller's application from a job
func (s *ApplicationService) Withdraw(ctx context.Context, userID, jobID int64) error {
	if err := s.applicationRepo.Withdraw(ctx, jobID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("jobID", jobID).Int64("userID", userID).Msg("Application withdrawn")
	return nil
}

// GetAppliedJobs lists the caller's applications, newest first
func (s *ApplicationService) GetAppliedJobs(ctx context.Context, userID int64) ([]dto.AppliedJobResponse, error) {
	apps, err := s.applicationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AppliedJobResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.NewAppliedJobResponse(app))
	}
	return responses, nil
}

// ViewApplicants lists applicants for a job the caller posted. Jobs owned
// by someone else read as not found.
func (s *ApplicationService) ViewApplicants(ctx context.Context, userID, jobID int64) ([]dto.ApplicantResponse, error) {
	if err := s.authz.ValidateJobOwnership(ctx, jobID, userID); err != nil {
		return nil, err
	}

	apps, err := s.applicationRepo.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicantResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.NewApplicantResponse(app))
	}
	return responses, nil
}
