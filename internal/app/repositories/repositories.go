package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	StudentProfileRepository     *StudentProfileRepository
	AlumniProfileRepository      *AlumniProfileRepository
	CompanyRepository            *CompanyRepository
	JobRepository                *JobRepository
	ApplicationRepository        *ApplicationRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	NotificationRepository       *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		StudentProfileRepository:     NewStudentProfileRepository(db),
		AlumniProfileRepository:      NewAlumniProfileRepository(db),
		CompanyRepository:            NewCompanyRepository(db),
		JobRepository:                NewJobRepository(db),
		ApplicationRepository:        NewApplicationRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
	}
}
