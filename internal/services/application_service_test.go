package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type applicationFixture struct {
	svc   *ApplicationServiceImpl
	jobs  JobService
	store *memoryStorage
	db    *gorm.DB
	jobID string
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	setTestConfig(t)

	db := newTestDB(t)
	store := newMemoryStorage()

	jobRepo := repositories.NewJobRepository(db)
	requirementService := NewRequirementService(repositories.NewRequirementRepository(db))
	jobs := NewJobService(jobRepo, requirementService)
	svc := NewApplicationService(repositories.NewApplicationRepository(db), jobRepo, store)

	job, err := jobs.CreateJob("", validJobRequest())
	require.NoError(t, err)

	return &applicationFixture{svc: svc, jobs: jobs, store: store, db: db, jobID: job.ID}
}

func pdfResume(size int) *dto.ResumeUpload {
	return &dto.ResumeUpload{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        int64(size),
		Content:     strings.NewReader(strings.Repeat("a", size)),
	}
}

func TestSubmitApplicationRequiresResume(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrResumeRequired)
}

func TestSubmitApplicationRejectsNonPDF(t *testing.T) {
	f := newApplicationFixture(t)

	resume := pdfResume(100)
	resume.ContentType = "application/msword"
	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, resume)
	assert.ErrorIs(t, err, apperrors.ErrResumeNotPDF)

	// image/pdf, text/pdf etc. are not close enough.
	resume = pdfResume(100)
	resume.ContentType = "text/pdf"
	_, err = f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, resume)
	assert.ErrorIs(t, err, apperrors.ErrResumeNotPDF)
}

func TestSubmitApplicationSizeBoundary(t *testing.T) {
	f := newApplicationFixture(t)

	// One byte over the cap fails with the size error, not the type error.
	over := pdfResume(5*1024*1024 + 1)
	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, over)
	assert.ErrorIs(t, err, apperrors.ErrResumeTooLarge)

	// Exactly at the cap is accepted.
	atCap := pdfResume(5 * 1024 * 1024)
	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, atCap)
	require.NoError(t, err)
	assert.Equal(t, "pending", application.Status)
}

func TestSubmitApplicationJobNotFound(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.SubmitApplication(context.Background(),
		"00000000-0000-0000-0000-000000000000", nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSubmitApplicationDuplicateGuard(t *testing.T) {
	f := newApplicationFixture(t)
	candidateID := "11111111-1111-1111-1111-111111111111"

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, &candidateID,
		&dto.SubmitApplicationRequest{CandidateName: "Ana", CandidateEmail: "ana@example.com"},
		pdfResume(10))
	require.NoError(t, err)

	_, err = f.svc.SubmitApplication(context.Background(), f.jobID, &candidateID,
		&dto.SubmitApplicationRequest{CandidateName: "Ana", CandidateEmail: "ana@example.com"},
		pdfResume(10))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)

	// The duplicate was rejected before the upload, so only one file landed.
	assert.Len(t, f.store.keys(), 1)

	applied, err := f.svc.HasAlreadyApplied(f.jobID, candidateID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestSubmitApplicationUniqueIndexIsAuthoritative(t *testing.T) {
	f := newApplicationFixture(t)
	candidateID := "11111111-1111-1111-1111-111111111111"

	// Simulate a race the pre-check missed: the row already exists when the
	// insert runs. The constraint violation still maps to the duplicate error.
	repo := repositories.NewApplicationRepository(f.db)
	require.NoError(t, repo.CreateWithDelivery(&models.Application{
		JobID:       f.jobID,
		CandidateID: &candidateID,
		CVURL:       "https://files.example.com/cvs/x.pdf",
	}, nil))

	err := repo.CreateWithDelivery(&models.Application{
		JobID:       f.jobID,
		CandidateID: &candidateID,
		CVURL:       "https://files.example.com/cvs/y.pdf",
	}, nil)
	assert.ErrorIs(t, err, repositories.ErrApplicationDuplicate)
}

func TestSubmitApplicationAnonymousTwiceAllowed(t *testing.T) {
	f := newApplicationFixture(t)

	for i := 0; i < 2; i++ {
		_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
			&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
		require.NoError(t, err, "anonymous applications are exempt from the duplicate rule")
	}
}

func TestSubmitApplicationResumeKeys(t *testing.T) {
	f := newApplicationFixture(t)

	// Authenticated: the key starts with the candidate ID.
	candidateID := "22222222-2222-2222-2222-222222222222"
	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, &candidateID,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)

	keys := f.store.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "cvs/"+candidateID+"_"), "got %q", keys[0])
	assert.True(t, strings.HasSuffix(keys[0], ".pdf"))
}

func TestSubmitApplicationSanitizesEmailInKey(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{
			CandidateName:  "Juan Pérez",
			CandidateEmail: "juan.perez+jobs@example.com",
		}, pdfResume(10))
	require.NoError(t, err)

	keys := f.store.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "cvs/juan_perez_jobs_example_com_"), "got %q", keys[0])
}

func TestSubmitApplicationFallbackKeyWithoutEmail(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{}, pdfResume(10))
	require.NoError(t, err)

	keys := f.store.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "cvs/candidate_"), "got %q", keys[0])
}

func TestSubmitApplicationWritesOutboxRow(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Juan Pérez"}, pdfResume(10))
	require.NoError(t, err)

	var deliveries []models.WebhookDelivery
	require.NoError(t, f.db.Find(&deliveries).Error)
	require.Len(t, deliveries, 1)
	assert.Equal(t, application.ID, deliveries[0].ApplicationID)
	assert.Equal(t, models.DeliveryStatusPending, deliveries[0].Status)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(deliveries[0].Payload, &payload))
	require.NotEmpty(t, application.ID)
	assert.Equal(t, application.ID, payload.ApplicationID, "the payload carries the inserted row's id")
	assert.Equal(t, f.jobID, payload.JobID)
	assert.Equal(t, "Juan Pérez", payload.CandidateName)
	assert.Equal(t, "Sin email", payload.CandidateEmail, "missing email gets the placeholder")
	assert.Equal(t, "pending", payload.Status)
	assert.Equal(t, payload.CVURL, payload.CVFileURL)
	assert.NotEmpty(t, payload.Timestamp)
}

func TestSubmitApplicationPlaceholdersForAnonymous(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{}, pdfResume(10))
	require.NoError(t, err)

	var delivery models.WebhookDelivery
	require.NoError(t, f.db.First(&delivery).Error)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(delivery.Payload, &payload))
	assert.Equal(t, "Sin nombre", payload.CandidateName)
	assert.Equal(t, "Sin email", payload.CandidateEmail)
}

func TestSubmitApplicationSignedURL(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)
	assert.Contains(t, application.CVURL, "signature=", "signed URL preferred")
}

func TestSubmitApplicationPublicURLFallback(t *testing.T) {
	f := newApplicationFixture(t)
	f.store.failSigning = true

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)
	assert.NotContains(t, application.CVURL, "signature=")
	assert.True(t, strings.HasPrefix(application.CVURL, "https://files.example.com/cvs/"))
}

func TestSubmitApplicationKicksNotifier(t *testing.T) {
	f := newApplicationFixture(t)

	kicked := 0
	f.svc.SetNotifier(func() { kicked++ })

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)
	assert.Equal(t, 1, kicked)
}

func TestUpdateStatusFlow(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)

	for _, status := range []string{"reviewed", "accepted", "rejected", "pending"} {
		require.NoError(t, f.svc.UpdateStatus(application.ID, status))
		got, err := f.svc.GetApplication(application.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)

	err = f.svc.UpdateStatus(application.ID, "archived")
	require.Error(t, err)

	got, err := f.svc.GetApplication(application.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status, "invalid update leaves the status untouched")
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newApplicationFixture(t)

	err := f.svc.UpdateStatus("00000000-0000-0000-0000-000000000000", "reviewed")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestListByJobNewestFirst(t *testing.T) {
	f := newApplicationFixture(t)

	for _, name := range []string{"Ana", "Berta"} {
		_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
			&dto.SubmitApplicationRequest{CandidateName: name}, pdfResume(10))
		require.NoError(t, err)
	}

	applications, err := f.svc.ListByJob(f.jobID)
	require.NoError(t, err)
	assert.Len(t, applications, 2)
}

func TestListByJobUnknownJob(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.ListByJob("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSubmitApplicationNormalizesEmail(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{
			CandidateName:  "Ana",
			CandidateEmail: "  Ana@Example.COM ",
		}, pdfResume(10))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", application.CandidateEmail)

	// The normalized form also feeds the storage key.
	keys := f.store.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "cvs/ana_example_com_"), "got %q", keys[0])
}

func TestSubmitApplicationHonorsConfiguredTypes(t *testing.T) {
	f := newApplicationFixture(t)
	config.AppConfig.Upload.AllowedTypes = []string{"application/pdf", "application/x-pdf"}

	resume := pdfResume(10)
	resume.ContentType = "application/x-pdf"
	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, resume)
	assert.NoError(t, err, "types come from configuration, not a hardcoded list")

	config.AppConfig.Upload.AllowedTypes = []string{"application/pdf"}
	resume = pdfResume(10)
	resume.ContentType = "application/x-pdf"
	_, err = f.svc.SubmitApplication(context.Background(), f.jobID, nil,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, resume)
	assert.ErrorIs(t, err, apperrors.ErrResumeNotPDF)
}

func TestListByJobIncludesCandidateProfile(t *testing.T) {
	f := newApplicationFixture(t)

	candidateID := "44444444-4444-4444-4444-444444444444"
	require.NoError(t, f.db.Create(&models.Profile{
		ID:       candidateID,
		Email:    "ana@example.com",
		FullName: "Ana García",
	}).Error)

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, &candidateID,
		&dto.SubmitApplicationRequest{CandidateName: "Ana García"}, pdfResume(10))
	require.NoError(t, err)

	applications, err := f.svc.ListByJob(f.jobID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	require.NotNil(t, applications[0].Candidate, "recruiter listing joins the candidate profile")
	assert.Equal(t, "Ana García", applications[0].Candidate.FullName)
	assert.Equal(t, "ana@example.com", applications[0].Candidate.Email)
}

func TestListByCandidateIncludesJobSummary(t *testing.T) {
	f := newApplicationFixture(t)
	candidateID := "33333333-3333-3333-3333-333333333333"

	_, err := f.svc.SubmitApplication(context.Background(), f.jobID, &candidateID,
		&dto.SubmitApplicationRequest{CandidateName: "Ana"}, pdfResume(10))
	require.NoError(t, err)

	applications, err := f.svc.ListByCandidate(candidateID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	require.NotNil(t, applications[0].Job)
	assert.Equal(t, "Backend Engineer", applications[0].Job.Title)
}
