package services

import (
	"testing"
	"time"

	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJobService(t *testing.T) (JobService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	requirementService := NewRequirementService(repositories.NewRequirementRepository(db))
	return NewJobService(repositories.NewJobRepository(db), requirementService), db
}

func validJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Build and operate the hiring platform services.",
		CompanyInfo:    "Acme Corp",
		Location:       "Madrid",
		EmploymentType: "full-time",
		Requirements:   []string{"Go", "SQL"},
	}
}

func TestCreateJobAttachesRequirements(t *testing.T) {
	svc, _ := newJobService(t)

	job, err := svc.CreateJob("", validJobRequest())
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, "active", job.Status, "status defaults to active")
	require.Len(t, job.Requirements, 2)

	names := []string{job.Requirements[0].Name, job.Requirements[1].Name}
	assert.ElementsMatch(t, []string{"Go", "SQL"}, names)
}

func TestCreateJobReusesCatalogEntries(t *testing.T) {
	svc, _ := newJobService(t)

	first, err := svc.CreateJob("", validJobRequest())
	require.NoError(t, err)

	req := validJobRequest()
	req.Title = "Platform Engineer"
	req.Requirements = []string{"go", "Kubernetes"}
	second, err := svc.CreateJob("", req)
	require.NoError(t, err)

	var firstGoID, secondGoID string
	for _, r := range first.Requirements {
		if r.Name == "Go" {
			firstGoID = r.ID
		}
	}
	for _, r := range second.Requirements {
		if r.Name == "Go" {
			secondGoID = r.ID
		}
	}
	require.NotEmpty(t, firstGoID)
	assert.Equal(t, firstGoID, secondGoID, "both jobs share the catalog entry")
}

func TestUpdateJobReplacesRequirementSet(t *testing.T) {
	svc, _ := newJobService(t)

	job, err := svc.CreateJob("", validJobRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateJob(job.ID, &dto.UpdateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Build and operate the hiring platform services.",
		CompanyInfo:    "Acme Corp",
		Location:       "Madrid",
		EmploymentType: "full-time",
		Status:         "active",
		Requirements:   []string{"Rust"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Requirements, 1, "previous requirements are detached")
	assert.Equal(t, "Rust", updated.Requirements[0].Name)
}

func TestUpdateJobDetachingKeepsCatalog(t *testing.T) {
	svc, _ := newJobService(t)

	job, err := svc.CreateJob("", validJobRequest())
	require.NoError(t, err)

	requirementSvc := svc.(*JobServiceImpl).requirementService

	_, err = svc.UpdateJob(job.ID, &dto.UpdateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Build and operate the hiring platform services.",
		CompanyInfo:    "Acme Corp",
		Location:       "Madrid",
		EmploymentType: "full-time",
		Status:         "closed",
		Requirements:   nil,
	})
	require.NoError(t, err)

	listed, err := requirementSvc.ListRequirements()
	require.NoError(t, err)
	assert.Len(t, listed, 2, "detaching does not delete catalog entries")
}

func TestUpdateJobNotFound(t *testing.T) {
	svc, _ := newJobService(t)

	_, err := svc.UpdateJob("00000000-0000-0000-0000-000000000000", &dto.UpdateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Build and operate the hiring platform services.",
		CompanyInfo:    "Acme Corp",
		Location:       "Madrid",
		EmploymentType: "full-time",
		Status:         "active",
	})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestListJobsNewestFirst(t *testing.T) {
	svc, _ := newJobService(t)

	for _, title := range []string{"First", "Second", "Third"} {
		req := validJobRequest()
		req.Title = title
		_, err := svc.CreateJob("", req)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	jobs, err := svc.ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Third", jobs[0].Title)
	assert.Equal(t, "First", jobs[2].Title)
}

func TestDeleteJobRemovesAssociations(t *testing.T) {
	svc, db := newJobService(t)

	job, err := svc.CreateJob("", validJobRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJob(job.ID))

	_, err = svc.GetJob(job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	var count int64
	require.NoError(t, db.Table("job_requirements").Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteJobNotFound(t *testing.T) {
	svc, _ := newJobService(t)

	err := svc.DeleteJob("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}
