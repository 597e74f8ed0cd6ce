package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/email"
)

// PasswordResetTokenTTL is how long a reset link stays valid.
const PasswordResetTokenTTL = time.Hour

// AuthService handles registration, login, and credential recovery
type AuthService struct {
	userRepo       repositories.IUserRepository
	studentRepo    repositories.IStudentProfileRepository
	alumniRepo     repositories.IAlumniProfileRepository
	resetTokenRepo repositories.IPasswordResetTokenRepository
	jwtService     *auth.JWTService
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentProfileRepository,
	alumniRepo repositories.IAlumniProfileRepository,
	resetTokenRepo repositories.IPasswordResetTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		alumniRepo:     alumniRepo,
		resetTokenRepo: resetTokenRepo,
		jwtService:     jwtService,
		emailService:   emailService,
		logger:         logger,
	}
}

// Register creates a new account with the requested role and an initial
// profile row carrying the display name. Students are usable immediately;
// alumni start unverified until an admin approves them.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:      req.Email,
		Password:   passwordHash,
		Role:       req.Role,
		Status:     models.UserStatusActive,
		IsVerified: req.Role == models.RoleStudent,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	switch req.Role {
	case models.RoleStudent:
		err = s.studentRepo.Upsert(ctx, &models.StudentProfile{UserID: id, Name: req.Name})
	case models.RoleAlumni:
		err = s.alumniRepo.Upsert(ctx, &models.AlumniProfile{UserID: id, Name: req.Name})
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to create initial profile")
		return nil, err
	}

	s.logger.Info().Int64("userID", id).Str("role", string(req.Role)).Msg("User registered")
	return s.buildAuthResponse(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == models.UserStatusDisabled {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record login time")
	}

	return s.buildAuthResponse(user)
}

// Logout ends the session. Access tokens are stateless and simply expire;
// this exists so clients have a uniform call to drop their token against.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}

// GetAccount returns the caller's user row
func (s *AuthService) GetAccount(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateAccount changes the caller's email address
func (s *AuthService) UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateEmail(ctx, userID, req.Email); err != nil {
		return nil, err
	}
	return s.GetAccount(ctx, userID)
}

// ForgotPassword starts credential recovery. Unknown emails are treated as
// success so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", req.Email).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := s.resetTokenRepo.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return err
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: time.Now().Add(PasswordResetTokenTTL),
	}
	if err := s.resetTokenRepo.Create(ctx, token); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, rawToken); err != nil {
		// The mailed link is the only copy of the raw token. A token that
		// was never delivered must not stay redeemable, and the caller
		// still gets a 200 so mail outages cannot probe for accounts.
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		if delErr := s.resetTokenRepo.Delete(ctx, token.ID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("tokenID", token.ID).Msg("Failed to delete undelivered reset token")
		}
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	token, err := s.resetTokenRepo.GetByTokenHash(ctx, hashResetToken(req.Token))
	if err != nil {
		return err
	}

	if token.Used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return err
	}
	if err := s.resetTokenRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", token.UserID).Msg("Password reset completed")
	return nil
}

// ChangePassword updates the password of an authenticated user
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// generateResetToken returns 32 random bytes hex-encoded
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken returns the SHA-256 hex digest stored in place of the raw token
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
