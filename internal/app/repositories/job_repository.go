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

// JobFilter narrows job listings. Zero values mean no filtering.
type JobFilter struct {
	Search   string // matches title or description, case-insensitive
	Page     int
	PageSize int
}

// IJobRepository defines job database operations
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	GetByIDForOwner(ctx context.Context, id, alumniUserID int64) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id, alumniUserID int64) error
	ListByOwner(ctx context.Context, alumniUserID int64) ([]*models.Job, error)
	ListForStudents(ctx context.Context, filter JobFilter) ([]*models.Job, int64, error)
	GetForStudent(ctx context.Context, id int64) (*models.Job, error)
	Count(ctx context.Context) (int64, error)
}

// JobRepository handles job database operations
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, posted_by_alumni_id, job_title, job_description, created_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	job := &models.Job{}
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.PostedByAlumniID,
		&job.JobTitle, &job.JobDescription, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error scanning job: %w", err)
	}
	return job, nil
}

// Create inserts a new job and returns its ID
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO jobs (company_id, posted_by_alumni_id, job_title, job_description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		job.CompanyID, job.PostedByAlumniID, job.JobTitle, job.JobDescription).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating job: %w", err)
	}
	return id, nil
}

// GetByID retrieves a job by ID regardless of owner
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// GetByIDForOwner retrieves a job only if the given alumni posted it.
// A job posted by someone else reads as not found so callers cannot
// distinguish other people's jobs from missing ones.
func (r *JobRepository) GetByIDForOwner(ctx context.Context, id, alumniUserID int64) (*models.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND posted_by_alumni_id = $2`,
		id, alumniUserID))
}

// Update rewrites the job's mutable fields, scoped to the owner
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs SET job_title = $1, job_description = $2
		WHERE id = $3 AND posted_by_alumni_id = $4`,
		job.JobTitle, job.JobDescription, job.ID, job.PostedByAlumniID)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a job, scoped to the owner. Applications cascade.
func (r *JobRepository) Delete(ctx context.Context, id, alumniUserID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM jobs WHERE id = $1 AND posted_by_alumni_id = $2`, id, alumniUserID)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// ListByOwner retrieves all jobs posted by the given alumni, newest first
func (r *JobRepository) ListByOwner(ctx context.Context, alumniUserID int64) ([]*models.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE posted_by_alumni_id = $1
		ORDER BY created_at DESC`, alumniUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job := &models.Job{}
		err := rows.Scan(
			&job.ID, &job.CompanyID, &job.PostedByAlumniID,
			&job.JobTitle, &job.JobDescription, &job.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// ListForStudents retrieves the job board with company and poster
// enrichment, optional search, and pagination
func (r *JobRepository) ListForStudents(ctx context.Context, filter JobFilter) ([]*models.Job, int64, error) {
	query := squirrel.Select(
		"j.id", "j.company_id", "j.posted_by_alumni_id", "j.job_title", "j.job_description", "j.created_at",
		"c.id", "c.alumni_id", "c.name", "c.website", "c.about", "c.status",
		"p.id", "p.user_id", "p.name", "p.grad_year", "p.current_title",
		"COUNT(*) OVER()").
		From("jobs j").
		Join("companies c ON c.id = j.company_id").
		LeftJoin("alumni_profiles p ON p.user_id = j.posted_by_alumni_id").
		OrderBy("j.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"j.job_title": pattern},
			squirrel.ILike{"j.job_description": pattern},
		})
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	var total int64
	for rows.Next() {
		job, err := scanEnrichedJob(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, nil
}

// GetForStudent retrieves a single job with company and poster enrichment
func (r *JobRepository) GetForStudent(ctx context.Context, id int64) (*models.Job, error) {
	row := r.db.QueryRow(ctx, `
		SELECT j.id, j.company_id, j.posted_by_alumni_id, j.job_title, j.job_description, j.created_at,
		       c.id, c.alumni_id, c.name, c.website, c.about, c.status,
		       p.id, p.user_id, p.name, p.grad_year, p.current_title,
		       0::bigint
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		LEFT JOIN alumni_profiles p ON p.user_id = j.posted_by_alumni_id
		WHERE j.id = $1`, id)

	var total int64
	job, err := scanEnrichedJob(row, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// Count returns the total number of jobs on the board
func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting jobs: %w", err)
	}
	return count, nil
}

// scanEnrichedJob scans a job row joined with its company and the poster's
// profile. The profile join is nullable: alumni can post before saving one.
func scanEnrichedJob(row pgx.Row, total *int64) (*models.Job, error) {
	job := &models.Job{Company: &models.Company{}}
	var posterID, posterUserID *int64
	var posterName *string
	var posterGradYear *int
	var posterTitle *string

	err := row.Scan(
		&job.ID, &job.CompanyID, &job.PostedByAlumniID,
		&job.JobTitle, &job.JobDescription, &job.CreatedAt,
		&job.Company.ID, &job.Company.AlumniID, &job.Company.Name,
		&job.Company.Website, &job.Company.About, &job.Company.Status,
		&posterID, &posterUserID, &posterName, &posterGradYear, &posterTitle,
		total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	if posterID != nil {
		job.Poster = &models.AlumniProfile{
			ID:           *posterID,
			UserID:       *posterUserID,
			GradYear:     posterGradYear,
			CurrentTitle: posterTitle,
		}
		if posterName != nil {
			job.Poster.Name = *posterName
		}
	}
	return job, nil
}
