package dto

import (
	"time"

	"github.com/winshaurya/alumnet/internal/app/models"
)

// ApplyJobRequest represents a job application request
type ApplyJobRequest struct {
	JobID     int64   `json:"job_id" binding:"required,min=1"`
	ResumeURL *string `json:"resume_url,omitempty"`
}

// AppliedJobResponse represents one entry in a student's applied-jobs list
type AppliedJobResponse struct {
	JobID          int64     `json:"jobId"`
	JobTitle       string    `json:"job_title"`
	CompanyName    string    `json:"companyName,omitempty"`
	ApplicantCount int       `json:"applicantCount"`
	AppliedAt      time.Time `json:"appliedAt"`
}

// ApplicantResponse represents one applicant in the poster-facing view
type ApplicantResponse struct {
	UserID    int64     `json:"userId"`
	Name      string    `json:"name,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	GradYear  *int      `json:"gradYear,omitempty"`
	ResumeURL *string   `json:"resumeUrl,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
}

// NewAppliedJobResponse maps an application row (with job relation) to the
// student's applied-jobs list shape.
func NewAppliedJobResponse(app *models.JobApplication) AppliedJobResponse {
	resp := AppliedJobResponse{
		JobID:          app.JobID,
		ApplicantCount: app.ApplicantCount,
		AppliedAt:      app.AppliedAt,
	}
	if app.Job != nil {
		resp.JobTitle = app.Job.JobTitle
		if app.Job.Company != nil {
			resp.CompanyName = app.Job.Company.Name
		}
	}
	return resp
}

// NewApplicantResponse maps an application row (with applicant relation) to
// the poster-facing applicant shape.
func NewApplicantResponse(app *models.JobApplication) ApplicantResponse {
	resp := ApplicantResponse{
		UserID:    app.UserID,
		ResumeURL: app.ResumeURL,
		AppliedAt: app.AppliedAt,
	}
	if app.Applicant != nil {
		resp.Name = app.Applicant.Name
		resp.Branch = app.Applicant.Branch
		resp.GradYear = app.Applicant.GradYear
		if resp.ResumeURL == nil {
			resp.ResumeURL = app.Applicant.ResumeURL
		}
	}
	return resp
}
