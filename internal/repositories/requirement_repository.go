package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrRequirementExists   = errors.New("requirement already exists")
)

type RequirementRepository interface {
	FindAll() ([]models.Requirement, error)
	FindByNormalizedName(normalized string) (*models.Requirement, error)
	Create(requirement *models.Requirement) error
}

type RequirementRepositoryImpl struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &RequirementRepositoryImpl{db: db}
}

func (r *RequirementRepositoryImpl) FindAll() ([]models.Requirement, error) {
	var requirements []models.Requirement
	err := r.db.Order("name ASC").Find(&requirements).Error
	return requirements, err
}

func (r *RequirementRepositoryImpl) FindByNormalizedName(normalized string) (*models.Requirement, error) {
	var requirement models.Requirement
	err := r.db.First(&requirement, "name_normalized = ?", normalized).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequirementNotFound
		}
		return nil, err
	}
	return &requirement, nil
}

// Create inserts a requirement row. The unique index on name_normalized
// makes concurrent creates race-safe: the loser gets ErrRequirementExists
// and should re-read the existing row.
func (r *RequirementRepositoryImpl) Create(requirement *models.Requirement) error {
	err := r.db.Create(requirement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRequirementExists
		}
		return err
	}
	return nil
}
