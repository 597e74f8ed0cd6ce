package models

import "time"

// Job defines the job model based on the 'jobs' table
type Job struct {
	ID               int64     `json:"id" db:"id"`
	CompanyID        int64     `json:"companyId" db:"company_id"`
	PostedByAlumniID int64     `json:"postedByAlumniId" db:"posted_by_alumni_id"`
	JobTitle         string    `json:"job_title" db:"job_title" example:"SDE Intern"`
	JobDescription   string    `json:"job_description" db:"job_description"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated for student-facing reads)
	Company *Company       `json:"company,omitempty"`
	Poster  *AlumniProfile `json:"postedBy,omitempty"`
}

// JobApplication defines a row of the 'job_applications' table.
// The (job_id, user_id) pair is the natural key. ApplicantCount is
// denormalized: every surviving row for the same job carries the current
// total application count for that job.
type JobApplication struct {
	JobID          int64     `json:"jobId" db:"job_id"`
	UserID         int64     `json:"userId" db:"user_id"`
	ResumeURL      *string   `json:"resumeUrl,omitempty" db:"resume_url"`
	ApplicantCount int       `json:"applicantCount" db:"applicant_count"`
	AppliedAt      time.Time `json:"appliedAt" db:"applied_at"`

	// Relations (populated when needed)
	Job       *Job            `json:"job,omitempty"`
	Applicant *StudentProfile `json:"applicant,omitempty"`
}
