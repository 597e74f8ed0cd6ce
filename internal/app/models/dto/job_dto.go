package dto

import (
	"time"

	"github.com/winshaurya/alumnet/internal/app/models"
)

// PostJobRequest represents a job creation request
type PostJobRequest struct {
	JobTitle       string `json:"job_title" binding:"required,min=2,max=200"`
	JobDescription string `json:"job_description" binding:"required"`
}

// UpdateJobRequest represents a partial job update. Only title and
// description are patchable; both absent is a validation error.
type UpdateJobRequest struct {
	JobTitle       *string `json:"job_title,omitempty"`
	JobDescription *string `json:"job_description,omitempty"`
}

// IsEmpty reports whether the patch contains no fields
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.JobTitle == nil && r.JobDescription == nil
}

// JobResponse represents an alumni-facing job
type JobResponse struct {
	ID             int64     `json:"id"`
	CompanyID      int64     `json:"companyId"`
	JobTitle       string    `json:"job_title" example:"SDE Intern"`
	JobDescription string    `json:"job_description"`
	ApplicantCount int       `json:"applicantCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StudentJobResponse represents a public job read enriched with company
// and poster fields.
type StudentJobResponse struct {
	ID             int64     `json:"id"`
	JobTitle       string    `json:"job_title" example:"SDE Intern"`
	JobDescription string    `json:"job_description"`
	CompanyName    string    `json:"companyName,omitempty"`
	CompanyWebsite *string   `json:"companyWebsite,omitempty"`
	PostedByName   string    `json:"postedByName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewJobResponse maps a job row to its alumni-facing response shape
func NewJobResponse(job *models.Job, applicantCount int) JobResponse {
	return JobResponse{
		ID:             job.ID,
		CompanyID:      job.CompanyID,
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
		ApplicantCount: applicantCount,
		CreatedAt:      job.CreatedAt,
	}
}

// NewStudentJobResponse maps an enriched job row to its public shape
func NewStudentJobResponse(job *models.Job) StudentJobResponse {
	resp := StudentJobResponse{
		ID:             job.ID,
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
		CreatedAt:      job.CreatedAt,
	}
	if job.Company != nil {
		resp.CompanyName = job.Company.Name
		resp.CompanyWebsite = job.Company.Website
	}
	if job.Poster != nil {
		resp.PostedByName = job.Poster.Name
	}
	return resp
}
