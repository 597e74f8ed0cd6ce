package services

import (
	"github.com/rs/zerolog"

	appauth "github.com/winshaurya/alumnet/internal/app/auth"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/email"
	"github.com/winshaurya/alumnet/internal/pkg/filestorage"
	"github.com/winshaurya/alumnet/internal/pkg/websocket"
)

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	JobService           *JobService
	ApplicationService   *ApplicationService
	StudentService       *StudentService
	AlumniService        *AlumniService
	AdminService         *AdminService
	NotificationService  *NotificationService
	AuthorizationService *appauth.AuthorizationService
}

// NewServices wires all services to their repositories and shared
// infrastructure
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *Services {
	notificationService := NewNotificationService(
		repos.NotificationRepository, repos.UserRepository, hub,
		logger.With().Str("service", "notification").Logger())

	authorizationService := appauth.NewAuthorizationService(repos.UserRepository, repos.JobRepository)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository, repos.StudentProfileRepository, repos.AlumniProfileRepository,
			repos.PasswordResetTokenRepository, jwtService, emailService,
			logger.With().Str("service", "auth").Logger()),
		JobService: NewJobService(
			repos.JobRepository, repos.CompanyRepository, repos.AlumniProfileRepository,
			repos.ApplicationRepository,
			logger.With().Str("service", "job").Logger()),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository, repos.JobRepository, repos.StudentProfileRepository,
			authorizationService, notificationService,
			logger.With().Str("service", "application").Logger()),
		StudentService: NewStudentService(
			repos.StudentProfileRepository, repos.ApplicationRepository, repos.JobRepository,
			storage,
			logger.With().Str("service", "student").Logger()),
		AlumniService: NewAlumniService(
			repos.AlumniProfileRepository, repos.CompanyRepository,
			logger.With().Str("service", "alumni").Logger()),
		AdminService: NewAdminService(
			repos.UserRepository, repos.AlumniProfileRepository, repos.CompanyRepository,
			repos.JobRepository, repos.ApplicationRepository, notificationService,
			logger.With().Str("service", "admin").Logger()),
		NotificationService:  notificationService,
		AuthorizationService: authorizationService,
	}
}
