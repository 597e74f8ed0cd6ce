package dto

import "github.com/winshaurya/alumnet/internal/app/models"

// SaveCompanyRequest creates or updates the caller's company record
type SaveCompanyRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=200"`
	Website *string `json:"website" binding:"omitempty,url"`
	About   *string `json:"about"`
}

// CompanyResponse represents a company read
type CompanyResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
	About   *string `json:"about,omitempty"`
	Status  string  `json:"status" example:"approved"`
}

// NewCompanyResponse maps a company row to its response shape
func NewCompanyResponse(c *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Website: c.Website,
		About:   c.About,
		Status:  string(c.Status),
	}
}
