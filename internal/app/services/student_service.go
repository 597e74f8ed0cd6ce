package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/filestorage"
)

// MaxResumeSize limits resume uploads to 5MB.
const MaxResumeSize = 5 * 1024 * 1024

// StudentService handles student profile operations
type StudentService struct {
	studentRepo     repositories.IStudentProfileRepository
	applicationRepo repositories.IApplicationRepository
	jobRepo         repositories.IJobRepository
	storage         filestorage.FileStorage
	logger          zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentProfileRepository,
	applicationRepo repositories.IApplicationRepository,
	jobRepo repositories.IJobRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:     studentRepo,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		storage:         storage,
		logger:          logger,
	}
}

// GetProfile returns the caller's student profile
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentProfileResponse(profile)
	return &resp, nil
}

// SaveProfile creates or updates the caller's student profile
func (s *StudentService) SaveProfile(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	profile := &models.StudentProfile{
		UserID:          userID,
		Name:            req.Name,
		StudentID:       req.StudentID,
		Branch:          req.Branch,
		GradYear:        req.GradYear,
		Skills:          req.Skills,
		PreferredRoles:  req.PreferredRoles,
		PreferredCities: req.PreferredCities,
	}
	if err := s.studentRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// The upsert does not touch resume_url, re-read to return the full row
	return s.GetProfile(ctx, userID)
}

// UploadResume stores a resume file and records its URL on the profile
func (s *StudentService) UploadResume(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.ResumeUploadResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "resume file is required")
	}
	if fileHeader.Size > MaxResumeSize {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "resume exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".doc" && ext != ".docx" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "resume must be a pdf, doc or docx file")
	}

	resumeURL, err := s.storage.SaveFile(ctx, fileHeader, "resumes")
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.UpdateResumeURL(ctx, userID, resumeURL); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("resumeURL", resumeURL).Msg("Resume uploaded")
	return &dto.ResumeUploadResponse{ResumeURL: resumeURL}, nil
}

// GetDashboard aggregates the student's activity: how many jobs they
// applied to plus the newest openings on the board.
func (s *StudentService) GetDashboard(ctx context.Context, userID int64) (*dto.StudentDashboardResponse, error) {
	apps, err := s.applicationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, _, err := s.jobRepo.ListForStudents(ctx, repositories.JobFilter{Page: 1, PageSize: 5})
	if err != nil {
		return nil, err
	}

	recent := make([]dto.StudentJobResponse, 0, len(jobs))
	for _, job := range jobs {
		recent = append(recent, dto.NewStudentJobResponse(job))
	}

	return &dto.StudentDashboardResponse{
		ApplicationCount: len(apps),
		RecentJobs:       recent,
	}, nil
}
