package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

// IStudentProfileRepository defines student profile database operations
type IStudentProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Upsert(ctx context.Context, profile *models.StudentProfile) error
	UpdateResumeURL(ctx context.Context, userID int64, resumeURL string) error
}

// IAlumniProfileRepository defines alumni profile database operations
type IAlumniProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error)
	Upsert(ctx context.Context, profile *models.AlumniProfile) error
	ListPendingVerification(ctx context.Context) ([]*models.AlumniProfile, error)
}

// StudentProfileRepository handles student profile database operations
type StudentProfileRepository struct {
	db *pgxpool.Pool
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

// GetByUserID retrieves the profile belonging to a user.
// Returns apperrors.ErrProfileNotFound when the user has not saved one yet.
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, student_id, branch, grad_year, skills,
		       resume_url, preferred_roles, preferred_cities, created_at, updated_at
		FROM student_profiles
		WHERE user_id = $1`,
		userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.StudentID, &profile.Branch,
		&profile.GradYear, &profile.Skills, &profile.ResumeURL,
		&profile.PreferredRoles, &profile.PreferredCities, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the profile row on first save and updates it afterwards
func (r *StudentProfileRepository) Upsert(ctx context.Context, profile *models.StudentProfile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_profiles
			(user_id, name, student_id, branch, grad_year, skills, preferred_roles, preferred_cities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			student_id = EXCLUDED.student_id,
			branch = EXCLUDED.branch,
			grad_year = EXCLUDED.grad_year,
			skills = EXCLUDED.skills,
			preferred_roles = EXCLUDED.preferred_roles,
			preferred_cities = EXCLUDED.preferred_cities,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		profile.UserID, profile.Name, profile.StudentID, profile.Branch, profile.GradYear,
		profile.Skills, profile.PreferredRoles, profile.PreferredCities).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving student profile: %w", err)
	}
	return nil
}

// UpdateResumeURL stores the URL of a freshly uploaded resume. The profile
// row is created on the fly if the student uploads before saving a profile.
func (r *StudentProfileRepository) UpdateResumeURL(ctx context.Context, userID int64, resumeURL string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO student_profiles (user_id, resume_url)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			resume_url = EXCLUDED.resume_url,
			updated_at = NOW()`,
		userID, resumeURL)
	if err != nil {
		return fmt.Errorf("error updating resume url: %w", err)
	}
	return nil
}

// AlumniProfileRepository handles alumni profile database operations
type AlumniProfileRepository struct {
	db *pgxpool.Pool
}

// NewAlumniProfileRepository creates a new AlumniProfileRepository
func NewAlumniProfileRepository(db *pgxpool.Pool) *AlumniProfileRepository {
	return &AlumniProfileRepository{db: db}
}

// GetByUserID retrieves the profile belonging to a user.
// Returns apperrors.ErrProfileNotFound when the user has not saved one yet.
func (r *AlumniProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	profile := &models.AlumniProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, grad_year, current_title, created_at, updated_at
		FROM alumni_profiles
		WHERE user_id = $1`,
		userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.GradYear,
		&profile.CurrentTitle, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting alumni profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the profile row on first save and updates it afterwards
func (r *AlumniProfileRepository) Upsert(ctx context.Context, profile *models.AlumniProfile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO alumni_profiles (user_id, name, grad_year, current_title)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			grad_year = EXCLUDED.grad_year,
			current_title = EXCLUDED.current_title,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		profile.UserID, profile.Name, profile.GradYear, profile.CurrentTitle).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving alumni profile: %w", err)
	}
	return nil
}

// ListPendingVerification returns profiles of alumni accounts an admin has
// not verified yet, joined with the owning user for email display.
func (r *AlumniProfileRepository) ListPendingVerification(ctx context.Context) ([]*models.AlumniProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.user_id, p.name, p.grad_year, p.current_title, p.created_at, p.updated_at,
		       u.id, u.email, u.role, u.status, u.is_verified, u.created_at
		FROM alumni_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.role = $1 AND u.is_verified = false AND u.status = $2
		ORDER BY p.created_at ASC`,
		models.RoleAlumni, models.UserStatusActive)
	if err != nil {
		return nil, fmt.Errorf("error listing pending alumni: %w", err)
	}
	defer rows.Close()

	var profiles []*models.AlumniProfile
	for rows.Next() {
		profile := &models.AlumniProfile{User: &models.User{}}
		err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.Name, &profile.GradYear,
			&profile.CurrentTitle, &profile.CreatedAt, &profile.UpdatedAt,
			&profile.User.ID, &profile.User.Email, &profile.User.Role,
			&profile.User.Status, &profile.User.IsVerified, &profile.User.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
