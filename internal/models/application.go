package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Application struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	JobID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_candidate" json:"job_id"`

	// CandidateID is null for anonymous or recruiter-entered applications.
	// The composite unique index with JobID only bites when it is set:
	// NULLs compare distinct, so anonymous applicants are exempt from the
	// one-application-per-job rule.
	CandidateID *string `gorm:"type:uuid;index;uniqueIndex:idx_applications_job_candidate" json:"candidate_id"`

	CandidateName  string            `json:"candidate_name"`
	CandidateEmail string            `json:"candidate_email"`
	CVURL          string            `gorm:"not null" json:"cv_url"`
	CoverLetter    *string           `json:"cover_letter"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppliedAt      time.Time         `gorm:"autoCreateTime" json:"applied_at"`

	Job       *Job     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	Candidate *Profile `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// WebhookDelivery is the outbox row for the new-application notification.
// It is written in the same transaction as the application insert; the
// webhook worker owns it afterwards. Application success never depends on
// delivery success.
type WebhookDelivery struct {
	BaseModel
	ApplicationID string         `gorm:"type:uuid;not null;index" json:"application_id"`
	Payload       datatypes.JSON `json:"payload"`
	Status        DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts      int            `gorm:"not null;default:0" json:"attempts"`
	LastError     string         `json:"last_error,omitempty"`
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty"`
}
