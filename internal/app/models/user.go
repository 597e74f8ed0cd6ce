package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"a@x.com"`                                      // User's email address
	Password    string     `json:"-" db:"password_hash"`                                                    // User's hashed password (excluded from JSON)
	Role        RoleType   `json:"role" db:"role" example:"student"`                                        // User's role (student, alumni or admin)
	Status      UserStatus `json:"status" db:"status" example:"active"`                                     // Account lifecycle status
	IsVerified  bool       `json:"isVerified" db:"is_verified" example:"true"`                              // Whether the account passed admin verification (alumni)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// PasswordResetToken defines a one-time password reset token row
type PasswordResetToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
