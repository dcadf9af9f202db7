package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationDuplicate = errors.New("application already exists for this job and candidate")
)

type ApplicationRepository interface {
	CreateWithDelivery(application *models.Application, delivery *models.WebhookDelivery) error
	FindByID(id string) (*models.Application, error)
	ExistsByJobAndCandidate(jobID, candidateID string) (bool, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
	FindByJob(jobID string) ([]models.Application, error)
	FindByCandidate(candidateID string) ([]models.Application, error)
	FindAll() ([]models.Application, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// CreateWithDelivery inserts the application and its outbox row in one
// transaction. The composite unique index on (job_id, candidate_id) is the
// authoritative duplicate guard; a violation surfaces as
// ErrApplicationDuplicate no matter what the pre-submit check said.
func (r *ApplicationRepositoryImpl) CreateWithDelivery(application *models.Application, delivery *models.WebhookDelivery) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Job", "Candidate").Create(application).Error; err != nil {
			return err
		}
		if delivery != nil {
			delivery.ApplicationID = application.ID
			if err := tx.Create(delivery).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.Preload("Job").Preload("Candidate").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// ExistsByJobAndCandidate reports whether the candidate already applied.
// A missing row is a normal outcome, not an error.
func (r *ApplicationRepositoryImpl) ExistsByJobAndCandidate(jobID, candidateID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Candidate").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByCandidate(candidateID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindAll() ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Job").Preload("Candidate").
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}
