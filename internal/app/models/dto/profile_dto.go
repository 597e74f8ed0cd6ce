package dto

import "github.com/winshaurya/alumnet/internal/app/models"

// UpdateStudentProfileRequest represents a student profile save. The profile
// row is created lazily on the first save.
type UpdateStudentProfileRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=100"`
	StudentID       string   `json:"studentId" binding:"required"`
	Branch          string   `json:"branch"`
	GradYear        *int     `json:"gradYear" binding:"omitempty,min=1950,max=2100"`
	Skills          []string `json:"skills"`
	PreferredRoles  []string `json:"preferredRoles"`
	PreferredCities []string `json:"preferredCities"`
}

// StudentProfileResponse represents a student profile read
type StudentProfileResponse struct {
	Name            string   `json:"name"`
	StudentID       string   `json:"studentId"`
	Branch          string   `json:"branch"`
	GradYear        *int     `json:"gradYear,omitempty"`
	Skills          []string `json:"skills"`
	ResumeURL       *string  `json:"resumeUrl,omitempty"`
	PreferredRoles  []string `json:"preferredRoles"`
	PreferredCities []string `json:"preferredCities"`
}

// StudentDashboardResponse aggregates a student's activity
type StudentDashboardResponse struct {
	ApplicationCount int                  `json:"applicationCount"`
	RecentJobs       []StudentJobResponse `json:"recentJobs"`
}

// UpdateAlumniProfileRequest represents an alumni profile save
type UpdateAlumniProfileRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	GradYear     *int    `json:"gradYear" binding:"omitempty,min=1950,max=2100"`
	CurrentTitle *string `json:"currentTitle"`
}

// AlumniProfileResponse represents an alumni profile read, including the
// profile-completion score that gates job posting.
type AlumniProfileResponse struct {
	Name         string  `json:"name"`
	GradYear     *int    `json:"gradYear,omitempty"`
	CurrentTitle *string `json:"currentTitle,omitempty"`
	Completion   int     `json:"completion" example:"50"`
}

// ResumeUploadResponse returns the stored resume location
type ResumeUploadResponse struct {
	ResumeURL string `json:"resumeUrl"`
}

// NewStudentProfileResponse maps a profile row to its response shape
func NewStudentProfileResponse(p *models.StudentProfile) StudentProfileResponse {
	return StudentProfileResponse{
		Name:            p.Name,
		StudentID:       p.StudentID,
		Branch:          p.Branch,
		GradYear:        p.GradYear,
		Skills:          p.Skills,
		ResumeURL:       p.ResumeURL,
		PreferredRoles:  p.PreferredRoles,
		PreferredCities: p.PreferredCities,
	}
}
