package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	BaseModel
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"not null" json:"description"`
	CompanyInfo    string         `gorm:"not null" json:"company_info"`
	Location       string         `gorm:"not null" json:"location"`
	EmploymentType EmploymentType `gorm:"type:varchar(20);not null" json:"employment_type"`
	Status         JobStatus      `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// RecruiterID is nullable; job ownership is recorded but not enforced.
	RecruiterID *string `gorm:"type:uuid;index" json:"recruiter_id"`

	Requirements []Requirement `gorm:"many2many:job_requirements;constraint:OnDelete:CASCADE" json:"requirements,omitempty"`
}

// Requirement is a reusable skill tag. NameNormalized holds the lowercased
// name under a unique index, so concurrent find-or-create calls cannot
// produce duplicate rows: the second insert fails with a duplicate-key
// error, which callers treat as "already exists".
type Requirement struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	NameNormalized string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Requirement) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// JobRequirement is the jobs<->requirements join row. It has no identity of
// its own; job updates delete the full set and re-insert it.
type JobRequirement struct {
	JobID         string `gorm:"type:uuid;primaryKey" json:"job_id"`
	RequirementID string `gorm:"type:uuid;primaryKey" json:"requirement_id"`
}
