package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// AdminService handles moderation and oversight operations
type AdminService struct {
	userRepo        repositories.IUserRepository
	alumniRepo      repositories.IAlumniProfileRepository
	companyRepo     repositories.ICompanyRepository
	jobRepo         repositories.IJobRepository
	applicationRepo repositories.IApplicationRepository
	notifications   *NotificationService
	logger          zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	alumniRepo repositories.IAlumniProfileRepository,
	companyRepo repositories.ICompanyRepository,
	jobRepo repositories.IJobRepository,
	applicationRepo repositories.IApplicationRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		alumniRepo:      alumniRepo,
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		notifications:   notifications,
		logger:          logger,
	}
}

// ListPendingAlumni returns alumni accounts waiting for verification
func (s *AdminService) ListPendingAlumni(ctx context.Context) ([]dto.PendingAlumniResponse, error) {
	profiles, err := s.alumniRepo.ListPendingVerification(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PendingAlumniResponse, 0, len(profiles))
	for _, profile := range profiles {
		resp := dto.PendingAlumniResponse{
			UserID:   profile.UserID,
			Name:     profile.Name,
			GradYear: profile.GradYear,
		}
		if profile.User != nil {
			resp.Email = profile.User.Email
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// VerifyAlumni approves an alumni account and notifies its owner
func (s *AdminService) VerifyAlumni(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAlumni {
		return apperrors.NewBadRequestError("user is not an alumni account")
	}

	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Alumni verified")
	if err := s.notifications.NotifyUser(ctx, userID,
		"Account verified", "Your alumni account has been verified. You can now post jobs."); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to notify verified alumni")
	}
	return nil
}

// ApproveCompany moves a company to approved and notifies its owner
func (s *AdminService) ApproveCompany(ctx context.Context, companyID int64) error {
	return s.moderateCompany(ctx, companyID, models.CompanyStatusApproved,
		"Company approved", "Your company listing has been approved.")
}

// RejectCompany moves a company to rejected and notifies its owner
func (s *AdminService) RejectCompany(ctx context.Context, companyID int64) error {
	return s.moderateCompany(ctx, companyID, models.CompanyStatusRejected,
		"Company rejected", "Your company listing was rejected. Please review and resubmit.")
}

func (s *AdminService) moderateCompany(ctx context.Context, companyID int64, status models.CompanyStatus, title, body string) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	if err := s.companyRepo.UpdateStatus(ctx, companyID, status); err != nil {
		return err
	}

	s.logger.Info().Int64("companyID", companyID).Str("status", string(status)).Msg("Company moderated")
	if err := s.notifications.NotifyUser(ctx, company.AlumniID, title, body); err != nil {
		s.logger.Warn().Err(err).Int64("companyID", companyID).Msg("Failed to notify company owner")
	}
	return nil
}

// ListUsers lists user accounts with optional role filtering
func (s *AdminService) ListUsers(ctx context.Context, role *models.RoleType, page, pageSize int) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(ctx, role, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
	}

	return &dto.PaginatedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// DeleteUser removes an account. Profiles, companies, jobs and applications
// cascade at the schema level.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return apperrors.NewBadRequestError("admin accounts cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Str("email", user.Email).Msg("User deleted")
	return nil
}

// SetUserStatus enables or disables an account
func (s *AdminService) SetUserStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Str("status", string(status)).Msg("User status changed")
	return nil
}

// ListJobs lists every job on the board for oversight
func (s *AdminService) ListJobs(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.ListForStudents(ctx, repositories.JobFilter{Page: page, PageSize: pageSize})
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

// Notify fans a notification out to explicit user ids, a whole role, or
// both. Returns how many users were targeted.
func (s *AdminService) Notify(ctx context.Context, req *dto.NotifyRequest) (int, error) {
	if len(req.UserIDs) == 0 && req.Role == "" {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, "notify requires userIds or a role")
	}

	targeted := 0
	if len(req.UserIDs) > 0 {
		for _, userID := range req.UserIDs {
			if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return 0, apperrors.NewResourceNotFoundError(fmt.Sprintf("user %d not found", userID))
				}
				return 0, err
			}
		}
		if err := s.notifications.NotifyUsers(ctx, req.UserIDs, req.Title, req.Body); err != nil {
			return 0, err
		}
		targeted += len(req.UserIDs)
	}

	if req.Role != "" {
		count, err := s.notifications.NotifyRole(ctx, req.Role, req.Title, req.Body)
		if err != nil {
			return 0, err
		}
		targeted += count
	}

	return targeted, nil
}

// GetDashboard aggregates entity counts for the admin overview
func (s *AdminService) GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	roleCounts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	companyCounts, err := s.companyRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var users, companies int64
	for _, count := range roleCounts {
		users += count
	}
	for _, count := range companyCounts {
		companies += count
	}

	return &dto.AdminDashboardResponse{
		Users:        users,
		Students:     roleCounts[models.RoleStudent],
		Alumni:       roleCounts[models.RoleAlumni],
		Companies:    companies,
		Jobs:         jobs,
		Applications: applications,
	}, nil
}
