package services

import (
	"strings"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"
)

type RequirementService interface {
	ListRequirements() ([]dto.RequirementResponse, error)
	FindOrCreate(name string) (*models.Requirement, error)
	EnsureRequirements(names []string) ([]string, error)
}

type RequirementServiceImpl struct {
	requirementRepo repositories.RequirementRepository
}

func NewRequirementService(requirementRepo repositories.RequirementRepository) RequirementService {
	return &RequirementServiceImpl{requirementRepo: requirementRepo}
}

func (s *RequirementServiceImpl) ListRequirements() ([]dto.RequirementResponse, error) {
	requirements, err := s.requirementRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.RequirementResponse, 0, len(requirements))
	for _, r := range requirements {
		out = append(out, dto.RequirementResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// FindOrCreate returns the requirement matching name case-insensitively,
// creating it when absent. Sequential calls with any casing of the same
// name return the same row. The lookup is only a fast path: when two
// concurrent calls both miss, the unique index on the normalized name makes
// one insert lose, and the loser re-reads the winner's row.
func (s *RequirementServiceImpl) FindOrCreate(name string) (*models.Requirement, error) {
	trimmed := strings.TrimSpace(name)
	normalized := strings.ToLower(trimmed)
	if normalized == "" {
		return nil, apperrors.NewBadRequestError("Requirement name cannot be empty")
	}

	existing, err := s.requirementRepo.FindByNormalizedName(normalized)
	if err == nil {
		return existing, nil
	}
	if err != repositories.ErrRequirementNotFound {
		return nil, apperrors.InternalError(err)
	}

	requirement := &models.Requirement{
		Name:           trimmed,
		NameNormalized: normalized,
	}
	err = s.requirementRepo.Create(requirement)
	if err == nil {
		return requirement, nil
	}
	if err == repositories.ErrRequirementExists {
		// Lost the race; the row exists now.
		existing, err := s.requirementRepo.FindByNormalizedName(normalized)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return existing, nil
	}
	return nil, apperrors.InternalError(err)
}

// EnsureRequirements resolves a list of free-text names to requirement IDs,
// creating missing entries. Duplicate names (after normalization) collapse
// to a single ID.
func (s *RequirementServiceImpl) EnsureRequirements(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	ids := make([]string, 0, len(names))

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		requirement, err := s.FindOrCreate(name)
		if err != nil {
			return nil, err
		}
		if seen[requirement.ID] {
			continue
		}
		seen[requirement.ID] = true
		ids = append(ids, requirement.ID)
	}
	return ids, nil
}
