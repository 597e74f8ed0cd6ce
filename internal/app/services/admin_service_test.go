package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

type adminServiceFixture struct {
	svc              *AdminService
	userRepo         *fakeUserRepo
	companyRepo      *fakeCompanyRepo
	notificationRepo *fakeNotificationRepo
}

func newAdminServiceFixture(t *testing.T) *adminServiceFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	companyRepo := newFakeCompanyRepo()
	notificationRepo := newFakeNotificationRepo()
	jobRepo := newFakeJobRepo()
	notifications := NewNotificationService(notificationRepo, userRepo, nil, zerolog.Nop())
	svc := NewAdminService(userRepo, newFakeAlumniProfileRepo(), companyRepo, jobRepo,
		newFakeApplicationRepo(jobRepo), notifications, zerolog.Nop())
	return &adminServiceFixture{
		svc:              svc,
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
	}
}

func (f *adminServiceFixture) addUser(t *testing.T, email string, role models.RoleType) int64 {
	t.Helper()
	id, err := f.userRepo.Create(context.Background(), &models.User{
		Email:    email,
		Password: "x",
		Role:     role,
		Status:   models.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func TestAdminService_VerifyAlumni(t *testing.T) {
	f := newAdminServiceFixture(t)
	ctx := context.Background()
	alumniID := f.addUser(t, "alum@example.com", models.RoleAlumni)
	studentID := f.addUser(t, "student@example.com", models.RoleStudent)

	if err := f.svc.VerifyAlumni(ctx, alumniID); err != nil {
		t.Fatalf("VerifyAlumni: %v", err)
	}
	user, err := f.userRepo.GetByID(ctx, alumniID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !user.IsVerified {
		t.Error("alumni should be verified")
	}

	// The owner got a stored notification.
	list, _, err := f.notificationRepo.ListByUser(ctx, alumniID, 1, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d notifications, want 1", len(list))
	}

	// Students cannot be verified as alumni.
	if err := f.svc.VerifyAlumni(ctx, studentID); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("verify student: got %v, want ErrBadRequest", err)
	}
	if err := f.svc.VerifyAlumni(ctx, 404); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("verify unknown: got %v, want ErrUserNotFound", err)
	}
}

func TestAdminService_CompanyModeration(t *testing.T) {
	f := newAdminServiceFixture(t)
	ctx := context.Background()
	alumniID := f.addUser(t, "alum@example.com", models.RoleAlumni)

	company, err := f.companyRepo.EnsureForAlumni(ctx, alumniID)
	if err != nil {
		t.Fatalf("EnsureForAlumni: %v", err)
	}

	if err := f.svc.ApproveCompany(ctx, company.ID); err != nil {
		t.Fatalf("ApproveCompany: %v", err)
	}
	got, err := f.companyRepo.GetByID(ctx, company.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.CompanyStatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}

	if err := f.svc.RejectCompany(ctx, company.ID); err != nil {
		t.Fatalf("RejectCompany: %v", err)
	}
	got, _ = f.companyRepo.GetByID(ctx, company.ID)
	if got.Status != models.CompanyStatusRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}

	if err := f.svc.ApproveCompany(ctx, 404); !errors.Is(err, apperrors.ErrCompanyNotFound) {
		t.Errorf("approve unknown: got %v, want ErrCompanyNotFound", err)
	}

	// One notification per moderation decision.
	list, _, err := f.notificationRepo.ListByUser(ctx, alumniID, 1, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d notifications, want 2", len(list))
	}
}

func TestAdminService_Notify(t *testing.T) {
	f := newAdminServiceFixture(t)
	ctx := context.Background()
	studentA := f.addUser(t, "a@example.com", models.RoleStudent)
	studentB := f.addUser(t, "b@example.com", models.RoleStudent)
	f.addUser(t, "alum@example.com", models.RoleAlumni)

	t.Run("requires a target", func(t *testing.T) {
		_, err := f.svc.Notify(ctx, &dto.NotifyRequest{Title: "Hi", Body: "There"})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("got %v, want ErrValidationFailed", err)
		}
	})

	t.Run("explicit ids", func(t *testing.T) {
		targeted, err := f.svc.Notify(ctx, &dto.NotifyRequest{
			Title: "Hi", Body: "There", UserIDs: []int64{studentA, studentB},
		})
		if err != nil {
			t.Fatalf("Notify: %v", err)
		}
		if targeted != 2 {
			t.Errorf("targeted = %d, want 2", targeted)
		}
	})

	t.Run("unknown id fails whole request", func(t *testing.T) {
		_, err := f.svc.Notify(ctx, &dto.NotifyRequest{
			Title: "Hi", Body: "There", UserIDs: []int64{studentA, 404},
		})
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("got %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("whole role", func(t *testing.T) {
		targeted, err := f.svc.Notify(ctx, &dto.NotifyRequest{
			Title: "Hi", Body: "Students", Role: models.RoleStudent,
		})
		if err != nil {
			t.Fatalf("Notify: %v", err)
		}
		if targeted != 2 {
			t.Errorf("targeted = %d, want 2", targeted)
		}
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	f := newAdminServiceFixture(t)
	ctx := context.Background()
	studentID := f.addUser(t, "student@example.com", models.RoleStudent)
	adminID := f.addUser(t, "admin@example.com", models.RoleAdmin)

	if err := f.svc.DeleteUser(ctx, studentID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := f.userRepo.GetByID(ctx, studentID); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("deleted user lookup: got %v, want ErrUserNotFound", err)
	}

	if err := f.svc.DeleteUser(ctx, adminID); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("delete admin: got %v, want ErrBadRequest", err)
	}
	if err := f.svc.DeleteUser(ctx, 404); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("delete unknown: got %v, want ErrUserNotFound", err)
	}
}

func TestAdminService_GetDashboard(t *testing.T) {
	f := newAdminServiceFixture(t)
	ctx := context.Background()
	f.addUser(t, "s1@example.com", models.RoleStudent)
	f.addUser(t, "s2@example.com", models.RoleStudent)
	alumniID := f.addUser(t, "alum@example.com", models.RoleAlumni)
	if _, err := f.companyRepo.EnsureForAlumni(ctx, alumniID); err != nil {
		t.Fatalf("EnsureForAlumni: %v", err)
	}

	dash, err := f.svc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.Users != 3 {
		t.Errorf("users = %d, want 3", dash.Users)
	}
	if dash.Students != 2 {
		t.Errorf("students = %d, want 2", dash.Students)
	}
	if dash.Alumni != 1 {
		t.Errorf("alumni = %d, want 1", dash.Alumni)
	}
	if dash.Companies != 1 {
		t.Errorf("companies = %d, want 1", dash.Companies)
	}
}
