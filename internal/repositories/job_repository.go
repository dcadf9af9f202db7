package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindAll() ([]models.Job, error)
	FindByID(id string) (*models.Job, error)
	CreateWithRequirements(job *models.Job, requirementIDs []string) error
	UpdateWithRequirements(job *models.Job, requirementIDs []string) error
	Delete(id string) error
	RequirementIDsForJob(jobID string) ([]string, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindAll() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Requirements").
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Requirements").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// CreateWithRequirements inserts the job row and its association rows in a
// single transaction, so a failed association write rolls the job back too.
func (r *JobRepositoryImpl) CreateWithRequirements(job *models.Job, requirementIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Requirements").Create(job).Error; err != nil {
			return err
		}
		return attachRequirements(tx, job.ID, requirementIDs)
	})
}

// UpdateWithRequirements replaces the scalar fields and the full requirement
// set. No diffing: every existing association is deleted and the new set is
// re-inserted, all inside one transaction.
func (r *JobRepositoryImpl) UpdateWithRequirements(job *models.Job, requirementIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
			"title":           job.Title,
			"description":     job.Description,
			"company_info":    job.CompanyInfo,
			"location":        job.Location,
			"employment_type": job.EmploymentType,
			"status":          job.Status,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}

		if err := tx.Where("job_id = ?", job.ID).Delete(&models.JobRequirement{}).Error; err != nil {
			return err
		}
		return attachRequirements(tx, job.ID, requirementIDs)
	})
}

func (r *JobRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobRequirement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Job{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) RequirementIDsForJob(jobID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.JobRequirement{}).
		Where("job_id = ?", jobID).
		Pluck("requirement_id", &ids).Error
	return ids, err
}

func attachRequirements(tx *gorm.DB, jobID string, requirementIDs []string) error {
	if len(requirementIDs) == 0 {
		return nil
	}
	rows := make([]models.JobRequirement, 0, len(requirementIDs))
	for _, reqID := range requirementIDs {
		rows = append(rows, models.JobRequirement{JobID: jobID, RequirementID: reqID})
	}
	return tx.Create(&rows).Error
}
