package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

// IPasswordResetTokenRepository defines password reset token operations
type IPasswordResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	InvalidateForUser(ctx context.Context, userID int64) error
}

// PasswordResetTokenRepository handles password reset token storage.
// Only the SHA-256 hash of a token is stored, never the raw value.
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Create inserts a new reset token row
func (r *PasswordResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		token.UserID, token.TokenHash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetByTokenHash retrieves a token row by its hash
func (r *PasswordResetTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	token := &models.PasswordResetToken{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1`,
		tokenHash).Scan(
		&token.ID, &token.UserID, &token.TokenHash,
		&token.ExpiresAt, &token.Used, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("error getting password reset token: %w", err)
	}
	return token, nil
}

// MarkUsed consumes a token so it cannot be replayed
func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE password_reset_tokens SET used = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// Delete removes a token row entirely. Used when the reset email could not
// be delivered and the token must not stay redeemable.
func (r *PasswordResetTokenRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM password_reset_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting password reset token: %w", err)
	}
	return nil
}

// InvalidateForUser consumes every outstanding token of the user. Issuing
// a new reset token invalidates older ones.
func (r *PasswordResetTokenRepository) InvalidateForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE password_reset_tokens SET used = true
		WHERE user_id = $1 AND used = false`, userID)
	if err != nil {
		return fmt.Errorf("error invalidating tokens: %w", err)
	}
	return nil
}
