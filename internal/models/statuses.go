package models

type UserRole string
type JobStatus string
type EmploymentType string
type ApplicationStatus string
type DeliveryStatus string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"

	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"

	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentInternship EmploymentType = "internship"
	EmploymentContract   EmploymentType = "contract"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusSkipped   DeliveryStatus = "skipped"
)

// ValidJobStatuses lists every accepted job status value.
var ValidJobStatuses = []JobStatus{JobStatusActive, JobStatusClosed, JobStatusDraft}

// ValidEmploymentTypes lists every accepted employment type.
var ValidEmploymentTypes = []EmploymentType{
	EmploymentFullTime, EmploymentPartTime, EmploymentInternship, EmploymentContract,
}

// ValidApplicationStatuses lists every accepted application status. The
// intended progression is pending -> reviewed -> accepted/rejected, but the
// workflow layer accepts any of these on update (recruiter override).
var ValidApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending, ApplicationStatusReviewed,
	ApplicationStatusAccepted, ApplicationStatusRejected,
}
