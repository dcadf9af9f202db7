package services

import (
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"
)

type JobService interface {
	ListJobs() ([]dto.JobResponse, error)
	GetJob(id string) (*dto.JobResponse, error)
	CreateJob(recruiterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(id string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(id string) error
}

type JobServiceImpl struct {
	jobRepo            repositories.JobRepository
	requirementService RequirementService
}

func NewJobService(jobRepo repositories.JobRepository, requirementService RequirementService) JobService {
	return &JobServiceImpl{
		jobRepo:            jobRepo,
		requirementService: requirementService,
	}
}

func (s *JobServiceImpl) ListJobs() ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, *jobToResponse(&jobs[i]))
	}
	return out, nil
}

func (s *JobServiceImpl) GetJob(id string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return jobToResponse(job), nil
}

func (s *JobServiceImpl) CreateJob(recruiterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	requirementIDs, err := s.requirementService.EnsureRequirements(req.Requirements)
	if err != nil {
		return nil, err
	}

	status := models.JobStatus(req.Status)
	if status == "" {
		status = models.JobStatusActive
	}

	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		CompanyInfo:    req.CompanyInfo,
		Location:       req.Location,
		EmploymentType: models.EmploymentType(req.EmploymentType),
		Status:         status,
	}
	if recruiterID != "" {
		job.RecruiterID = &recruiterID
	}

	if err := s.jobRepo.CreateWithRequirements(job, requirementIDs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetJob(job.ID)
}

// UpdateJob replaces the scalar fields and the whole requirement set.
// Requirements that were attached before and are absent from req are
// detached; there is no merging.
func (s *JobServiceImpl) UpdateJob(id string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	requirementIDs, err := s.requirementService.EnsureRequirements(req.Requirements)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		BaseModel:      models.BaseModel{ID: id},
		Title:          req.Title,
		Description:    req.Description,
		CompanyInfo:    req.CompanyInfo,
		Location:       req.Location,
		EmploymentType: models.EmploymentType(req.EmploymentType),
		Status:         models.JobStatus(req.Status),
	}

	if err := s.jobRepo.UpdateWithRequirements(job, requirementIDs); err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetJob(id)
}

func (s *JobServiceImpl) DeleteJob(id string) error {
	if err := s.jobRepo.Delete(id); err != nil {
		if err == repositories.ErrJobNotFound {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func jobToResponse(job *models.Job) *dto.JobResponse {
	requirements := make([]dto.RequirementResponse, 0, len(job.Requirements))
	for _, r := range job.Requirements {
		requirements = append(requirements, dto.RequirementResponse{ID: r.ID, Name: r.Name})
	}

	return &dto.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		CompanyInfo:    job.CompanyInfo,
		Location:       job.Location,
		EmploymentType: string(job.EmploymentType),
		Status:         string(job.Status),
		RecruiterID:    job.RecruiterID,
		Requirements:   requirements,
		CreatedAt:      job.CreatedAt,
	}
}
