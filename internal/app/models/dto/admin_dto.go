package dto

import "github.com/winshaurya/alumnet/internal/app/models"

// PendingAlumniResponse represents one entry in the verification queue
type PendingAlumniResponse struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	GradYear *int   `json:"gradYear,omitempty"`
}

// AdminUserResponse represents a user row in the admin user list
type AdminUserResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	IsVerified bool   `json:"isVerified"`
}

// NotifyRequest fans out a notification to the targeted users. An empty
// UserIDs list targets every user with the given role; an empty role targets
// the explicit ids only.
type NotifyRequest struct {
	Title   string          `json:"title" binding:"required,min=1,max=200"`
	Body    string          `json:"body" binding:"required"`
	UserIDs []int64         `json:"userIds"`
	Role    models.RoleType `json:"role" binding:"omitempty,oneof=student alumni admin"`
}

// AdminDashboardResponse aggregates entity counts for oversight
type AdminDashboardResponse struct {
	Users        int64 `json:"users"`
	Students     int64 `json:"students"`
	Alumni       int64 `json:"alumni"`
	Companies    int64 `json:"companies"`
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
}

// NewAdminUserResponse maps a user row to the admin list shape
func NewAdminUserResponse(u *models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		Status:     string(u.Status),
		IsVerified: u.IsVerified,
	}
}
