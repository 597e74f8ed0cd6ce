package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

// ICompanyRepository defines company database operations
type ICompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetByAlumniID(ctx context.Context, alumniUserID int64) (*models.Company, error)
	Save(ctx context.Context, company *models.Company) error
	EnsureForAlumni(ctx context.Context, alumniUserID int64) (*models.Company, error)
	UpdateStatus(ctx context.Context, id int64, status models.CompanyStatus) error
	List(ctx context.Context, status *models.CompanyStatus, page, pageSize int) ([]*models.Company, int64, error)
	CountByStatus(ctx context.Context) (map[models.CompanyStatus]int64, error)
}

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, alumni_id, name, website, about, status, created_at, updated_at`

func scanCompany(row pgx.Row) (*models.Company, error) {
	company := &models.Company{}
	err := row.Scan(
		&company.ID, &company.AlumniID, &company.Name, &company.Website,
		&company.About, &company.Status, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error scanning company: %w", err)
	}
	return company, nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `
		SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

// GetByAlumniID retrieves the company owned by the given alumni user
func (r *CompanyRepository) GetByAlumniID(ctx context.Context, alumniUserID int64) (*models.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `
		SELECT `+companyColumns+` FROM companies WHERE alumni_id = $1`, alumniUserID))
}

// Save creates the alumni's company record on first save and updates it
// afterwards. Edits reset the moderation status to pending.
func (r *CompanyRepository) Save(ctx context.Context, company *models.Company) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO companies (alumni_id, name, website, about, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (alumni_id) DO UPDATE SET
			name = EXCLUDED.name,
			website = EXCLUDED.website,
			about = EXCLUDED.about,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at`,
		company.AlumniID, company.Name, company.Website, company.About, models.CompanyStatusPending).
		Scan(&company.ID, &company.Status, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving company: %w", err)
	}
	return nil
}

// EnsureForAlumni returns the alumni's company, creating a pending
// placeholder row when none exists. Job posting depends on this so jobs
// always reference a company.
func (r *CompanyRepository) EnsureForAlumni(ctx context.Context, alumniUserID int64) (*models.Company, error) {
	company, err := r.GetByAlumniID(ctx, alumniUserID)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, apperrors.ErrCompanyNotFound) {
		return nil, err
	}

	return scanCompany(r.db.QueryRow(ctx, `
		INSERT INTO companies (alumni_id, name, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (alumni_id) DO UPDATE SET updated_at = companies.updated_at
		RETURNING `+companyColumns,
		alumniUserID, models.PlaceholderCompanyName, models.CompanyStatusPending))
}

// UpdateStatus moves a company through moderation (approve or reject)
func (r *CompanyRepository) UpdateStatus(ctx context.Context, id int64, status models.CompanyStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating company status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// List retrieves companies with optional status filtering and pagination
func (r *CompanyRepository) List(ctx context.Context, status *models.CompanyStatus, page, pageSize int) ([]*models.Company, int64, error) {
	query := squirrel.Select("id", "alumni_id", "name", "website", "about", "status",
		"created_at", "updated_at", "COUNT(*) OVER()").
		From("companies").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	offset := (page - 1) * pageSize
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	var total int64
	for rows.Next() {
		company := &models.Company{}
		err := rows.Scan(
			&company.ID, &company.AlumniID, &company.Name, &company.Website,
			&company.About, &company.Status, &company.CreatedAt, &company.UpdatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, total, nil
}

// CountByStatus returns the number of companies per moderation status
func (r *CompanyRepository) CountByStatus(ctx context.Context) (map[models.CompanyStatus]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting companies: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.CompanyStatus]int64)
	for rows.Next() {
		var status models.CompanyStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[status] = count
	}
	return counts, nil
}
