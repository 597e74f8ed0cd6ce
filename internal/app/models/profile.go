package models

import "time"

// StudentProfile defines the student profile model based on the
// 'student_profiles' table. It is created lazily on first profile save.
type StudentProfile struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	Name            string    `json:"name" db:"name" example:"Jane Doe"`
	StudentID       string    `json:"studentId" db:"student_id" example:"21BCS042"`
	Branch          string    `json:"branch" db:"branch" example:"CSE"`
	GradYear        *int      `json:"gradYear,omitempty" db:"grad_year" example:"2026"`
	Skills          []string  `json:"skills" db:"skills"`
	ResumeURL       *string   `json:"resumeUrl,omitempty" db:"resume_url"`
	PreferredRoles  []string  `json:"preferredRoles" db:"preferred_roles"`
	PreferredCities []string  `json:"preferredCities" db:"preferred_cities"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// AlumniProfile defines the alumni profile model based on the
// 'alumni_profiles' table. Same lazy-creation pattern as StudentProfile.
type AlumniProfile struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name" example:"John Smith"`
	GradYear     *int      `json:"gradYear,omitempty" db:"grad_year" example:"2018"`
	CurrentTitle *string   `json:"currentTitle,omitempty" db:"current_title" example:"Staff Engineer"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User      *User      `json:"user,omitempty"`
	Companies []*Company `json:"companies,omitempty"`
}
