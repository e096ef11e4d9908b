package domain

import (
	"context"
	"time"
)

// Application status constants. This service only ever writes pending;
// the rest belong to the employer review flow.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// UnknownJobField replaces job title and company name when the job was deleted
const UnknownJobField = "Unknown"

// Application represents a job application from a user
type Application struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ResumeID    int64     `json:"resume_id"`
	JobID       int64     `json:"job_id"`
	CompanyID   int64     `json:"company_id"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

// ApplicationSummary is what candidates see for each of their applications
type ApplicationSummary struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

// ApplicationStatus answers "have I applied to this job?"
type ApplicationStatus struct {
	HasApplied bool       `json:"has_applied"`
	Status     *string    `json:"status"`
	AppliedAt  *time.Time `json:"applied_at"`
}

// ApplyInput carries an apply request into the usecase
type ApplyInput struct {
	UserID      int64   `validate:"required,gt=0"`
	JobID       int64   `validate:"required,gt=0"`
	ResumeID    int64   `validate:"required,gt=0"`
	// nil when the client sent no cover letter; "" is kept as sent
	CoverLetter *string `validate:"omitempty,max=10000,no_null_bytes"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create inserts app and fills ID and AppliedAt. A (user, job) pair that
	// already exists yields ErrDuplicate.
	Create(ctx context.Context, app *Application) error
	GetByUserAndJob(ctx context.Context, userID, jobID int64) (*Application, error)
	// GetByUserID returns the user's applications, newest first
	GetByUserID(ctx context.Context, userID int64) ([]Application, error)
	CheckExists(ctx context.Context, userID, jobID int64) (bool, error)
}

// ApplicationUsecase is the applications service
type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, in ApplyInput) (*ApplicationSummary, error)
	GetMyApplications(ctx context.Context, userID int64) ([]ApplicationSummary, error)
	CheckApplicationStatus(ctx context.Context, userID, jobID int64) (*ApplicationStatus, error)
	DownloadResume(ctx context.Context, resumeID int64) (*ResumeFile, error)
	ViewResumeDetails(ctx context.Context, resumeID int64) (*ResumeDetail, error)
}
