package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/db"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/dberrors"
)

// IApplicationRepository defines job application database operations
type IApplicationRepository interface {
	Apply(ctx context.Context, jobID, userID int64, resumeURL *string) (int, error)
	Withdraw(ctx context.Context, jobID, userID int64) error
	HasApplied(ctx context.Context, jobID, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.JobApplication, error)
	ListApplicants(ctx context.Context, jobID int64) ([]*models.JobApplication, error)
	CountForJob(ctx context.Context, jobID int64) (int, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationRepository handles job application database operations.
//
// Every row of job_applications carries a denormalized applicant_count for
// its job. Apply and Withdraw rewrite the count on all surviving rows of
// the job inside the same transaction as the row mutation, so the column
// never disagrees with the actual row count.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Apply records an application and returns the job's new applicant count.
// The job row is locked for the duration so concurrent applications cannot
// overshoot the capacity.
func (r *ApplicationRepository) Apply(ctx context.Context, jobID, userID int64, resumeURL *string) (int, error) {
	var newCount int

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrJobNotFound
			}
			return fmt.Errorf("error locking job: %w", err)
		}

		var current int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID).Scan(&current)
		if err != nil {
			return fmt.Errorf("error counting applications: %w", err)
		}
		if current >= models.JobCapacity {
			return apperrors.ErrCapacityExceeded
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO job_applications (job_id, user_id, resume_url, applicant_count)
			VALUES ($1, $2, $3, 0)`,
			jobID, userID, resumeURL)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyApplied
			}
			return fmt.Errorf("error inserting application: %w", err)
		}

		newCount = current + 1
		return rewriteApplicantCount(ctx, tx, jobID, newCount)
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// Withdraw removes an application and refreshes the count on the job's
// remaining rows within the same transaction.
func (r *ApplicationRepository) Withdraw(ctx context.Context, jobID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrJobNotFound
			}
			return fmt.Errorf("error locking job: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM job_applications WHERE job_id = $1 AND user_id = $2`, jobID, userID)
		if err != nil {
			return fmt.Errorf("error deleting application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrApplicationNotFound
		}

		var remaining int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID).Scan(&remaining)
		if err != nil {
			return fmt.Errorf("error counting applications: %w", err)
		}
		return rewriteApplicantCount(ctx, tx, jobID, remaining)
	})
}

func rewriteApplicantCount(ctx context.Context, tx pgx.Tx, jobID int64, count int) error {
	_, err := tx.Exec(ctx, `
		UPDATE job_applications SET applicant_count = $1 WHERE job_id = $2`, count, jobID)
	if err != nil {
		return fmt.Errorf("error rewriting applicant count: %w", err)
	}
	return nil
}

// HasApplied reports whether the user already applied to the job
func (r *ApplicationRepository) HasApplied(ctx context.Context, jobID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves the user's applications joined with the job and its
// company, newest application first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.job_id, a.user_id, a.resume_url, a.applicant_count, a.applied_at,
		       j.id, j.company_id, j.posted_by_alumni_id, j.job_title, j.job_description, j.created_at,
		       c.id, c.alumni_id, c.name, c.website, c.about, c.status
		FROM job_applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.JobApplication
	for rows.Next() {
		app := &models.JobApplication{
			Job: &models.Job{Company: &models.Company{}},
		}
		err := rows.Scan(
			&app.JobID, &app.UserID, &app.ResumeURL, &app.ApplicantCount, &app.AppliedAt,
			&app.Job.ID, &app.Job.CompanyID, &app.Job.PostedByAlumniID,
			&app.Job.JobTitle, &app.Job.JobDescription, &app.Job.CreatedAt,
			&app.Job.Company.ID, &app.Job.Company.AlumniID, &app.Job.Company.Name,
			&app.Job.Company.Website, &app.Job.Company.About, &app.Job.Company.Status)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// ListApplicants retrieves applications for a job joined with each
// applicant's student profile, oldest application first
func (r *ApplicationRepository) ListApplicants(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.job_id, a.user_id, a.resume_url, a.applicant_count, a.applied_at,
		       p.id, p.user_id, p.name, p.student_id, p.branch, p.grad_year, p.skills, p.resume_url
		FROM job_applications a
		LEFT JOIN student_profiles p ON p.user_id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("error listing applicants: %w", err)
	}
	defer rows.Close()

	var apps []*models.JobApplication
	for rows.Next() {
		app := &models.JobApplication{}
		var profileID, profileUserID *int64
		var name, studentID, branch *string
		var gradYear *int
		var skills []string
		var profileResume *string

		err := rows.Scan(
			&app.JobID, &app.UserID, &app.ResumeURL, &app.ApplicantCount, &app.AppliedAt,
			&profileID, &profileUserID, &name, &studentID, &branch, &gradYear, &skills, &profileResume)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		if profileID != nil {
			app.Applicant = &models.StudentProfile{
				ID:        *profileID,
				UserID:    *profileUserID,
				GradYear:  gradYear,
				Skills:    skills,
				ResumeURL: profileResume,
			}
			if name != nil {
				app.Applicant.Name = *name
			}
			if studentID != nil {
				app.Applicant.StudentID = *studentID
			}
			if branch != nil {
				app.Applicant.Branch = *branch
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// CountForJob returns the number of applications for one job
func (r *ApplicationRepository) CountForJob(ctx context.Context, jobID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return count, nil
}

// Count returns the total number of applications across all jobs
func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return count, nil
}
