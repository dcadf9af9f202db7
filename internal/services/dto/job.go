package dto

import "time"

type CreateJobRequest struct {
	Title          string `json:"title" binding:"required" validate:"required,min=3"`
	Description    string `json:"description" binding:"required" validate:"required,min=10"`
	CompanyInfo    string `json:"company_info" binding:"required" validate:"required,min=2"`
	Location       string `json:"location" binding:"required" validate:"required,min=2"`
	EmploymentType string `json:"employment_type" binding:"required" validate:"required,is-employment-type"`
	Status         string `json:"status" validate:"omitempty,is-job-status"`

	// Requirements are free-text skill names; the catalog deduplicates them
	// case-insensitively and creates missing entries.
	Requirements []string `json:"requirements" validate:"omitempty,dive,min=2"`
}

// UpdateJobRequest replaces every scalar field and the full requirement
// set. There is no partial update.
type UpdateJobRequest struct {
	Title          string   `json:"title" binding:"required" validate:"required,min=3"`
	Description    string   `json:"description" binding:"required" validate:"required,min=10"`
	CompanyInfo    string   `json:"company_info" binding:"required" validate:"required,min=2"`
	Location       string   `json:"location" binding:"required" validate:"required,min=2"`
	EmploymentType string   `json:"employment_type" binding:"required" validate:"required,is-employment-type"`
	Status         string   `json:"status" binding:"required" validate:"required,is-job-status"`
	Requirements   []string `json:"requirements" validate:"omitempty,dive,min=2"`
}

type RequirementResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type JobResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	CompanyInfo    string                `json:"company_info"`
	Location       string                `json:"location"`
	EmploymentType string                `json:"employment_type"`
	Status         string                `json:"status"`
	RecruiterID    *string               `json:"recruiter_id"`
	Requirements   []RequirementResponse `json:"requirements"`
	CreatedAt      time.Time             `json:"created_at"`
}
