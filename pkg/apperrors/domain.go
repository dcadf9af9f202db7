package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain errors shared across services.

// ErrNotFound converts a repository "record not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Refresh token is invalid or expired",
	http.StatusUnauthorized,
)

// --- jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"jobs",
	"Job not found",
	http.StatusNotFound,
)

// --- applications ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"applications",
	"Application not found",
	http.StatusNotFound,
)

// ErrDuplicateApplication is returned when a candidate already has an
// application for the job. The storage-level unique index is the
// authoritative signal; the pre-submit check only produces it earlier.
var ErrDuplicateApplication = New(
	CodeAlreadyExists,
	"applications",
	"You have already applied to this job",
	http.StatusConflict,
)

// ErrResumeRequired, ErrResumeNotPDF and ErrResumeTooLarge deliberately
// carry distinct messages so the client can tell the causes apart.
var ErrResumeRequired = New(
	CodeValidationFailed,
	"applications",
	"A resume file is required",
	http.StatusBadRequest,
)

var ErrResumeNotPDF = New(
	CodeValidationFailed,
	"applications",
	"Resume must be a PDF file (application/pdf)",
	http.StatusBadRequest,
)

var ErrResumeTooLarge = New(
	CodeValidationFailed,
	"applications",
	"Resume exceeds the maximum size of 5MB",
	http.StatusBadRequest,
)
