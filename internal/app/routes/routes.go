package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/winshaurya/alumnet/internal/app/controllers"
	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/middleware"
)

// Controllers groups everything SetupRouter needs to wire
type Controllers struct {
	Auth         *controllers.AuthController
	Job          *controllers.JobController
	Application  *controllers.ApplicationController
	Student      *controllers.StudentController
	Alumni       *controllers.AlumniController
	Admin        *controllers.AdminController
	Notification *controllers.NotificationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Everything below requires a valid token of either scheme
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.Authenticate())

	authAccount := authenticated.Group("/auth")
	{
		authAccount.POST("/logout", c.Auth.Logout)
		authAccount.GET("/profile", c.Auth.GetProfile)
		authAccount.PUT("/profile", c.Auth.UpdateProfile)
		authAccount.POST("/change-password", c.Auth.ChangePassword)
	}

	job := authenticated.Group("/job")
	{
		// Alumni-only job management
		alumniJobs := job.Group("")
		alumniJobs.Use(authMiddleware.RequireRole(models.RoleAlumni))
		{
			alumniJobs.POST("/post-job", c.Job.PostJob)
			alumniJobs.GET("/get-my-jobs", c.Job.GetMyJobs)
			alumniJobs.GET("/get-job-by-id/:id", c.Job.GetJobByID)
			alumniJobs.PUT("/update-job/:id", c.Job.UpdateJob)
			alumniJobs.DELETE("/delete-job/:id", c.Job.DeleteJob)
			alumniJobs.GET("/view-applicants/:jobId", c.Application.ViewApplicants)
		}

		// Student-facing board reads and applications
		studentJobs := job.Group("")
		studentJobs.Use(authMiddleware.RequireRole(models.RoleStudent))
		{
			studentJobs.GET("/get-all-jobs-student", c.Job.GetAllJobsStudent)
			studentJobs.GET("/get-job-by-id-student/:id", c.Job.GetJobByIDStudent)
			studentJobs.POST("/apply-job", c.Application.ApplyJob)
			studentJobs.DELETE("/withdraw-application/:job_id", c.Application.WithdrawApplication)
			studentJobs.GET("/get-applied-jobs", c.Application.GetAppliedJobs)
		}
	}

	student := authenticated.Group("/student")
	student.Use(authMiddleware.RequireRole(models.RoleStudent))
	{
		student.GET("/profile", c.Student.GetProfile)
		student.PUT("/profile", c.Student.SaveProfile)
		student.POST("/resume", c.Student.UploadResume)
		student.GET("/dashboard", c.Student.GetDashboard)
	}

	alumni := authenticated.Group("/alumni")
	alumni.Use(authMiddleware.RequireRole(models.RoleAlumni))
	{
		alumni.GET("/profile", c.Alumni.GetProfile)
		alumni.PUT("/profile", c.Alumni.SaveProfile)
		alumni.GET("/company", c.Alumni.GetCompany)
		alumni.POST("/company", c.Alumni.SaveCompany)
		alumni.GET("/companies", c.Alumni.ListCompanies)
	}

	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/alumni/pending", c.Admin.ListPendingAlumni)
		admin.PUT("/alumni/verify/:id", c.Admin.VerifyAlumni)
		admin.PATCH("/companies/:id/approve", c.Admin.ApproveCompany)
		admin.PATCH("/companies/:id/reject", c.Admin.RejectCompany)
		admin.GET("/users", c.Admin.ListUsers)
		admin.DELETE("/users/:id", c.Admin.DeleteUser)
		admin.GET("/jobs", c.Admin.ListJobs)
		admin.POST("/notify", c.Admin.Notify)
		admin.GET("/dashboard", c.Admin.GetDashboard)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Notification.List)
		notifications.PUT("/:id/read", c.Notification.MarkRead)
		notifications.GET("/ws", c.Notification.Connect)
	}
}
