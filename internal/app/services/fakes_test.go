package services

import (
	"context"
	"sort"
	"sync"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests. They mirror the
// sentinel errors of the real repositories so error paths stay honest.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	clone := *user
	clone.ID = id
	r.users[id] = &clone
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ int64) error { return nil }

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateEmail(_ context.Context, userID int64, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Email = email
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, userID int64, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, userID int64, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsVerified = verified
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role *models.RoleType, _, _ int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if role == nil || u.Role == *role {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ListIDsByRole(_ context.Context, role models.RoleType) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for _, u := range r.users {
		if u.Role == role && u.Status == models.UserStatusActive {
			ids = append(ids, u.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context) (map[models.RoleType]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.RoleType]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

type fakeStudentProfileRepo struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.StudentProfile // keyed by user id
}

func newFakeStudentProfileRepo() *fakeStudentProfileRepo {
	return &fakeStudentProfileRepo{nextID: 1, profiles: make(map[int64]*models.StudentProfile)}
}

func (r *fakeStudentProfileRepo) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeStudentProfileRepo) Upsert(_ context.Context, profile *models.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		resume := existing.ResumeURL
		clone := *profile
		clone.ResumeURL = resume
		r.profiles[profile.UserID] = &clone
		return nil
	}
	profile.ID = r.nextID
	r.nextID++
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeStudentProfileRepo) UpdateResumeURL(_ context.Context, userID int64, resumeURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = &models.StudentProfile{ID: r.nextID, UserID: userID}
		r.nextID++
		r.profiles[userID] = p
	}
	p.ResumeURL = &resumeURL
	return nil
}

type fakeAlumniProfileRepo struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.AlumniProfile
}

func newFakeAlumniProfileRepo() *fakeAlumniProfileRepo {
	return &fakeAlumniProfileRepo{nextID: 1, profiles: make(map[int64]*models.AlumniProfile)}
}

func (r *fakeAlumniProfileRepo) GetByUserID(_ context.Context, userID int64) (*models.AlumniProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeAlumniProfileRepo) Upsert(_ context.Context, profile *models.AlumniProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = r.nextID
		r.nextID++
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeAlumniProfileRepo) ListPendingVerification(_ context.Context) ([]*models.AlumniProfile, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]*models.Company // keyed by alumni user id
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{nextID: 1, companies: make(map[int64]*models.Company)}
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) GetByAlumniID(_ context.Context, alumniUserID int64) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[alumniUserID]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.companies[company.AlumniID]; ok {
		company.ID = existing.ID
	} else {
		company.ID = r.nextID
		r.nextID++
	}
	company.Status = models.CompanyStatusPending
	clone := *company
	r.companies[company.AlumniID] = &clone
	return nil
}

func (r *fakeCompanyRepo) EnsureForAlumni(_ context.Context, alumniUserID int64) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[alumniUserID]; ok {
		clone := *c
		return &clone, nil
	}
	c := &models.Company{
		ID:       r.nextID,
		AlumniID: alumniUserID,
		Name:     models.PlaceholderCompanyName,
		Status:   models.CompanyStatusPending,
	}
	r.nextID++
	r.companies[alumniUserID] = c
	clone := *c
	return &clone, nil
}

func (r *fakeCompanyRepo) UpdateStatus(_ context.Context, id int64, status models.CompanyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return apperrors.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) List(_ context.Context, status *models.CompanyStatus, _, _ int) ([]*models.Company, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Company
	for _, c := range r.companies {
		if status == nil || c.Status == *status {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeCompanyRepo) CountByStatus(_ context.Context) (map[models.CompanyStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.CompanyStatus]int64)
	for _, c := range r.companies {
		counts[c.Status]++
	}
	return counts, nil
}

type fakeJobRepo struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1, jobs: make(map[int64]*models.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	clone := *job
	clone.ID = id
	r.jobs[id] = &clone
	return id, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id int64) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *fakeJobRepo) GetByIDForOwner(_ context.Context, id, alumniUserID int64) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.PostedByAlumniID != alumniUserID {
		return nil, apperrors.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	existing.JobTitle = job.JobTitle
	existing.JobDescription = job.JobDescription
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id, alumniUserID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.PostedByAlumniID != alumniUserID {
		return apperrors.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, alumniUserID int64) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Job
	for _, j := range r.jobs {
		if j.PostedByAlumniID == alumniUserID {
			clone := *j
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeJobRepo) ListForStudents(_ context.Context, _ repositories.JobFilter) ([]*models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Job
	for _, j := range r.jobs {
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) GetForStudent(ctx context.Context, id int64) (*models.Job, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeJobRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

// fakeApplicationRepo reproduces the apply/withdraw semantics of the real
// repository: uniqueness of (job, user), the capacity ceiling, and a
// denormalized count kept equal to the row count of the job.
type fakeApplicationRepo struct {
	mu   sync.Mutex
	jobs *fakeJobRepo
	apps map[int64]map[int64]*models.JobApplication // job id -> user id
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{jobs: jobs, apps: make(map[int64]map[int64]*models.JobApplication)}
}

func (r *fakeApplicationRepo) Apply(ctx context.Context, jobID, userID int64, resumeURL *string) (int, error) {
	if _, err := r.jobs.GetByID(ctx, jobID); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser := r.apps[jobID]
	if byUser == nil {
		byUser = make(map[int64]*models.JobApplication)
		r.apps[jobID] = byUser
	}
	if _, ok := byUser[userID]; ok {
		return 0, apperrors.ErrAlreadyApplied
	}
	if len(byUser) >= models.JobCapacity {
		return 0, apperrors.ErrCapacityExceeded
	}
	byUser[userID] = &models.JobApplication{JobID: jobID, UserID: userID, ResumeURL: resumeURL}
	count := len(byUser)
	for _, app := range byUser {
		app.ApplicantCount = count
	}
	return count, nil
}

func (r *fakeApplicationRepo) Withdraw(ctx context.Context, jobID, userID int64) error {
	if _, err := r.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser := r.apps[jobID]
	if _, ok := byUser[userID]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(byUser, userID)
	count := len(byUser)
	for _, app := range byUser {
		app.ApplicantCount = count
	}
	return nil
}

func (r *fakeApplicationRepo) HasApplied(_ context.Context, jobID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.apps[jobID][userID]
	return ok, nil
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID int64) ([]*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.JobApplication
	for jobID, byUser := range r.apps {
		if app, ok := byUser[userID]; ok {
			clone := *app
			if j, ok := r.jobs.jobs[jobID]; ok {
				jobClone := *j
				clone.Job = &jobClone
			}
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

func (r *fakeApplicationRepo) ListApplicants(_ context.Context, jobID int64) ([]*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.JobApplication
	for _, app := range r.apps[jobID] {
		clone := *app
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeApplicationRepo) CountForJob(_ context.Context, jobID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps[jobID]), nil
}

func (r *fakeApplicationRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, byUser := range r.apps {
		total += int64(len(byUser))
	}
	return total, nil
}

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*models.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{nextID: 1, tokens: make(map[string]*models.PasswordResetToken)}
}

func (r *fakeResetTokenRepo) Create(_ context.Context, token *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.TokenHash] = &clone
	return nil
}

func (r *fakeResetTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, apperrors.ErrInvalidPasswordResetToken
	}
	clone := *t
	return &clone, nil
}

func (r *fakeResetTokenRepo) MarkUsed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.ID == id {
			t.Used = true
			return nil
		}
	}
	return apperrors.ErrInvalidPasswordResetToken
}

func (r *fakeResetTokenRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, t := range r.tokens {
		if t.ID == id {
			delete(r.tokens, hash)
			return nil
		}
	}
	return nil
}

func (r *fakeResetTokenRepo) liveCount(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Used {
			n++
		}
	}
	return n
}

func (r *fakeResetTokenRepo) InvalidateForUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Used = true
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	clone := *n
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(ctx context.Context, userIDs []int64, title, body string) error {
	for _, id := range userIDs {
		if err := r.Create(ctx, &models.Notification{UserID: id, Title: title, Body: body}); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64, _, _ int) ([]*models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

// recordingNotifier captures NotifyUser calls for assertions
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

type notifierCall struct {
	UserID int64
	Title  string
	Body   string
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID int64, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifierCall{UserID: userID, Title: title, Body: body})
	return nil
}

// recordingEmailService captures outgoing mail for assertions. Setting
// sendErr makes every send fail.
type recordingEmailService struct {
	mu          sync.Mutex
	resetTokens map[string]string // email -> raw token
	sendErr     error
}

func newRecordingEmailService() *recordingEmailService {
	return &recordingEmailService{resetTokens: make(map[string]string)}
}

func (s *recordingEmailService) SendPasswordResetEmail(toEmail, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.resetTokens[toEmail] = token
	return nil
}

func (s *recordingEmailService) SendNotificationEmail(_, _, _ string) error { return nil }
