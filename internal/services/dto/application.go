package dto

import (
	"io"
	"time"
)

// ResumeUpload is the incoming resume file, decoupled from multipart so
// the service can be exercised without HTTP.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type SubmitApplicationRequest struct {
	CandidateName  string  `form:"candidate_name" json:"candidate_name" validate:"omitempty,min=2"`
	CandidateEmail string  `form:"candidate_email" json:"candidate_email" validate:"omitempty,email"`
	CoverLetter    *string `form:"cover_letter" json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-application-status"`
}

// JobSummary is the job projection embedded in candidate-side listings.
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyInfo string `json:"company_info"`
	Location    string `json:"location"`
}

// ProfileSummary is the candidate-profile projection embedded in
// recruiter-side listings.
type ProfileSummary struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ApplicationResponse struct {
	ID             string          `json:"id"`
	JobID          string          `json:"job_id"`
	CandidateID    *string         `json:"candidate_id"`
	CandidateName  string          `json:"candidate_name"`
	CandidateEmail string          `json:"candidate_email"`
	CVURL          string          `json:"cv_url"`
	CoverLetter    *string         `json:"cover_letter"`
	Status         string          `json:"status"`
	AppliedAt      time.Time       `json:"applied_at"`
	Job            *JobSummary     `json:"job,omitempty"`
	Candidate      *ProfileSummary `json:"candidate,omitempty"`
}
