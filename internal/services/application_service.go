package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// keySanitizer strips everything that is unsafe in a storage key; matches
// get replaced with underscores.
var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// WebhookPayload is the JSON body posted to the configured webhook for
// each new application.
type WebhookPayload struct {
	ApplicationID  string `json:"application_id"`
	JobID          string `json:"job_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	CVURL          string `json:"cv_url"`
	CVFileURL      string `json:"cv_file_url"`
	Timestamp      string `json:"timestamp"`
	Status         string `json:"status"`
}

type ApplicationService interface {
	HasAlreadyApplied(jobID, candidateID string) (bool, error)
	SubmitApplication(ctx context.Context, jobID string, candidateID *string, req *dto.SubmitApplicationRequest, resume *dto.ResumeUpload) (*dto.ApplicationResponse, error)
	GetApplication(id string) (*dto.ApplicationResponse, error)
	UpdateStatus(id string, status string) error
	ListByJob(jobID string) ([]dto.ApplicationResponse, error)
	ListByCandidate(candidateID string) ([]dto.ApplicationResponse, error)
	ListAll() ([]dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	store           storage.Storage

	// notify nudges the webhook worker so fresh outbox rows go out without
	// waiting for the next poll tick. Optional.
	notify func()
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	store storage.Storage,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		store:           store,
	}
}

// SetNotifier wires the webhook worker's kick callback. Called once during
// startup, before the HTTP server accepts traffic.
func (s *ApplicationServiceImpl) SetNotifier(notify func()) {
	s.notify = notify
}

func (s *ApplicationServiceImpl) HasAlreadyApplied(jobID, candidateID string) (bool, error) {
	exists, err := s.applicationRepo.ExistsByJobAndCandidate(jobID, candidateID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

// SubmitApplication validates the resume, uploads it, and records the
// application together with its webhook outbox row. The duplicate
// pre-check runs before the upload so a rejected duplicate never leaves an
// orphaned file behind; the unique index catches whatever the pre-check
// misses.
func (s *ApplicationServiceImpl) SubmitApplication(
	ctx context.Context,
	jobID string,
	candidateID *string,
	req *dto.SubmitApplicationRequest,
	resume *dto.ResumeUpload,
) (*dto.ApplicationResponse, error) {
	if err := validateResume(resume); err != nil {
		return nil, err
	}

	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if candidateID != nil {
		exists, err := s.applicationRepo.ExistsByJobAndCandidate(jobID, *candidateID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ErrDuplicateApplication
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.CandidateEmail))

	key := resumeKey(candidateID, email)
	if err := s.store.Save(ctx, key, resume.Content, resume.ContentType); err != nil {
		logger.CtxError(ctx, "Failed to store resume", "key", key, "error", err)
		return nil, apperrors.InternalError(err)
	}

	cvURL := s.resumeURL(ctx, key)

	// The ID is assigned up front: the outbox payload embeds it, and the
	// payload is marshaled before the insert runs.
	application := &models.Application{
		ID:             uuid.NewString(),
		JobID:          jobID,
		CandidateID:    candidateID,
		CandidateName:  req.CandidateName,
		CandidateEmail: email,
		CVURL:          cvURL,
		CoverLetter:    req.CoverLetter,
		Status:         models.ApplicationStatusPending,
	}

	delivery, err := s.buildDelivery(application)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.applicationRepo.CreateWithDelivery(application, delivery); err != nil {
		if err == repositories.ErrApplicationDuplicate {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application submitted",
		"application_id", application.ID,
		"job_id", jobID,
	)

	if s.notify != nil {
		s.notify()
	}

	return applicationToResponse(application), nil
}

func validateResume(resume *dto.ResumeUpload) error {
	if resume == nil || resume.Content == nil {
		return apperrors.ErrResumeRequired
	}

	cfg := config.GetConfig()
	allowed := false
	for _, contentType := range cfg.Upload.AllowedTypes {
		if resume.ContentType == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.ErrResumeNotPDF
	}

	if resume.Size > cfg.Upload.MaxSize {
		return apperrors.ErrResumeTooLarge
	}
	return nil
}

// resumeKey builds the storage key for a resume. Authenticated candidates
// get their user ID as the prefix; anonymous ones their sanitized email,
// or a timestamped fallback when no email was given.
func resumeKey(candidateID *string, email string) string {
	now := time.Now().UnixMilli()

	var base string
	switch {
	case candidateID != nil:
		base = *candidateID
	case email != "":
		base = keySanitizer.ReplaceAllString(email, "_")
	default:
		base = fmt.Sprintf("candidate_%d", now)
	}

	return fmt.Sprintf("cvs/%s_%d.pdf", base, now)
}

// resumeURL prefers a signed URL; if signing fails the public URL is good
// enough for the recruiter-facing listing.
func (s *ApplicationServiceImpl) resumeURL(ctx context.Context, key string) string {
	ttl := time.Duration(config.GetConfig().Upload.SignedURLTTL) * time.Second

	signed, err := s.store.GetSignedURL(ctx, key, ttl)
	if err == nil {
		return signed
	}
	logger.CtxWarn(ctx, "Signed URL generation failed, falling back to public URL",
		"key", key, "error", err)

	public, err := s.store.GetURL(ctx, key)
	if err != nil {
		return key
	}
	return public
}

func (s *ApplicationServiceImpl) buildDelivery(application *models.Application) (*models.WebhookDelivery, error) {
	name := application.CandidateName
	if name == "" {
		name = "Sin nombre"
	}
	email := application.CandidateEmail
	if email == "" {
		email = "Sin email"
	}

	payload := WebhookPayload{
		ApplicationID:  application.ID,
		JobID:          application.JobID,
		CandidateName:  name,
		CandidateEmail: email,
		CVURL:          application.CVURL,
		CVFileURL:      application.CVURL,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Status:         string(models.ApplicationStatusPending),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &models.WebhookDelivery{
		Payload: raw,
		Status:  models.DeliveryStatusPending,
	}, nil
}

func (s *ApplicationServiceImpl) GetApplication(id string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return applicationToResponse(application), nil
}

// UpdateStatus sets the application status. Any valid status can follow
// any other; there is no transition graph.
func (s *ApplicationServiceImpl) UpdateStatus(id string, status string) error {
	valid := false
	for _, st := range models.ValidApplicationStatuses {
		if string(st) == status {
			valid = true
			break
		}
	}
	if !valid {
		return apperrors.ErrInvalidStatus("applications",
			fmt.Sprintf("Invalid application status: %s", status))
	}

	if err := s.applicationRepo.UpdateStatus(id, models.ApplicationStatus(status)); err != nil {
		if err == repositories.ErrApplicationNotFound {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationServiceImpl) ListByJob(jobID string) ([]dto.ApplicationResponse, error) {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	applications, err := s.applicationRepo.FindByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicationsToResponses(applications), nil
}

func (s *ApplicationServiceImpl) ListByCandidate(candidateID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicationsToResponses(applications), nil
}

func (s *ApplicationServiceImpl) ListAll() ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicationsToResponses(applications), nil
}

func applicationToResponse(a *models.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		CandidateID:    a.CandidateID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CVURL:          a.CVURL,
		CoverLetter:    a.CoverLetter,
		Status:         string(a.Status),
		AppliedAt:      a.AppliedAt,
	}
	if a.Job != nil {
		resp.Job = &dto.JobSummary{
			ID:          a.Job.ID,
			Title:       a.Job.Title,
			CompanyInfo: a.Job.CompanyInfo,
			Location:    a.Job.Location,
		}
	}
	if a.Candidate != nil {
		resp.Candidate = &dto.ProfileSummary{
			FullName: a.Candidate.FullName,
			Email:    a.Candidate.Email,
		}
	}
	return resp
}

func applicationsToResponses(applications []models.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, *applicationToResponse(&applications[i]))
	}
	return out
}
