package models

import "time"

// Company defines the company model based on the 'companies' table.
// A company is owned by exactly one alumni profile. A placeholder row is
// inserted automatically when an alumni posts a job before company setup.
type Company struct {
	ID        int64         `json:"id" db:"id"`
	AlumniID  int64         `json:"alumniId" db:"alumni_id"`
	Name      string        `json:"name" db:"name" example:"Acme Corp"`
	Website   *string       `json:"website,omitempty" db:"website" example:"https://acme.example"`
	About     *string       `json:"about,omitempty" db:"about"`
	Status    CompanyStatus `json:"status" db:"status" example:"pending"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// PlaceholderCompanyName is the name given to auto-created companies.
const PlaceholderCompanyName = "Unnamed Company"

// IsPlaceholder reports whether the company still carries only the
// auto-created minimal fields.
func (c *Company) IsPlaceholder() bool {
	return c.Name == PlaceholderCompanyName && c.Website == nil && c.About == nil
}
