// Package seed creates default data on startup.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	appModels "github.com/winshaurya/alumnet/internal/app/models"
	appRepos "github.com/winshaurya/alumnet/internal/app/repositories"
	pkgAuth "github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@alumnet.local"
	defaultAdminPassword = "ChangeMe123!"
)

// EnsureDefaultAdmin creates the bootstrap admin account if no admin exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD, falling back to
// development defaults.
func EnsureDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	counts, err := userRepo.CountByRole(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users by role: %w", err)
	}
	if counts[appModels.RoleAdmin] > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
		logger.Warn().Str("email", email).Msg("Seeding admin with the default password, change it immediately")
	}

	passwordHash, err := pkgAuth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Email:      email,
		Password:   passwordHash,
		Role:       appModels.RoleAdmin,
		Status:     appModels.UserStatusActive,
		IsVerified: true,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Info().Str("email", email).Msg("Default admin account created")
	return nil
}
