package auth

import (
	"context"
	"errors"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// AuthorizationService handles authorization checks that need database state
type AuthorizationService struct {
	userRepo repositories.IUserRepository
	jobRepo  repositories.IJobRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository, jobRepo repositories.IJobRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		jobRepo:  jobRepo,
	}
}

// HasRole checks whether the user holds the given role
func (s *AuthorizationService) HasRole(ctx context.Context, userID int64, role models.RoleType) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user in HasRole")
		return false, err
	}
	return user.Role == role, nil
}

// ValidateJobOwnership ensures the alumni owns the job. Jobs owned by
// someone else read as not found, never as forbidden.
func (s *AuthorizationService) ValidateJobOwnership(ctx context.Context, jobID, alumniUserID int64) error {
	_, err := s.jobRepo.GetByIDForOwner(ctx, jobID, alumniUserID)
	return err
}
