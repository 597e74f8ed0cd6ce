package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/auth"
	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
)

// AlumniService handles alumni profile and company operations
type AlumniService struct {
	alumniRepo  repositories.IAlumniProfileRepository
	companyRepo repositories.ICompanyRepository
	logger      zerolog.Logger
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(
	alumniRepo repositories.IAlumniProfileRepository,
	companyRepo repositories.ICompanyRepository,
	logger zerolog.Logger,
) *AlumniService {
	return &AlumniService{
		alumniRepo:  alumniRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// GetProfile returns the caller's alumni profile with its completion score
func (s *AlumniService) GetProfile(ctx context.Context, userID int64) (*dto.AlumniProfileResponse, error) {
	profile, err := s.alumniRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByAlumniID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrCompanyNotFound) {
		return nil, err
	}

	return &dto.AlumniProfileResponse{
		Name:         profile.Name,
		GradYear:     profile.GradYear,
		CurrentTitle: profile.CurrentTitle,
		Completion:   auth.ProfileCompletion(profile, company),
	}, nil
}

// SaveProfile creates or updates the caller's alumni profile
func (s *AlumniService) SaveProfile(ctx context.Context, userID int64, req *dto.UpdateAlumniProfileRequest) (*dto.AlumniProfileResponse, error) {
	profile := &models.AlumniProfile{
		UserID:       userID,
		Name:         req.Name,
		GradYear:     req.GradYear,
		CurrentTitle: req.CurrentTitle,
	}
	if err := s.alumniRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// GetCompany returns the caller's company record
func (s *AlumniService) GetCompany(ctx context.Context, userID int64) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByAlumniID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

// SaveCompany creates or updates the caller's company record. Any edit puts
// the record back into the moderation queue.
func (s *AlumniService) SaveCompany(ctx context.Context, userID int64, req *dto.SaveCompanyRequest) (*dto.CompanyResponse, error) {
	company := &models.Company{
		AlumniID: userID,
		Name:     req.Name,
		Website:  req.Website,
		About:    req.About,
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("companyID", company.ID).Msg("Company saved")
	resp := dto.NewCompanyResponse(company)
	return &resp, nil
}

// ListCompanies lists approved companies for the directory view
func (s *AlumniService) ListCompanies(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse, error) {
	status := models.CompanyStatusApproved
	companies, total, err := s.companyRepo.List(ctx, &status, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, dto.NewCompanyResponse(company))
	}

	return &dto.PaginatedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}
