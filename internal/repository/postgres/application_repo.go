package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
)

type applicationRepo struct {
	db DBTX
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DBTX) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application; applied_at comes from the database clock
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (user_id, resume_id, job_id, company_id, cover_letter, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applied_at`

	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.UserID,
		app.ResumeID,
		app.JobID,
		app.CompanyID,
		app.CoverLetter,
		app.Status,
	).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByUserAndJob returns the user's application to a job
func (r *applicationRepo) GetByUserAndJob(ctx context.Context, userID, jobID int64) (*domain.Application, error) {
	query := `
		SELECT id, user_id, resume_id, job_id, company_id, cover_letter, status, applied_at
		FROM applications
		WHERE user_id = $1 AND job_id = $2
		ORDER BY applied_at DESC
		LIMIT 1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(
		&app.ID, &app.UserID, &app.ResumeID, &app.JobID, &app.CompanyID,
		&app.CoverLetter, &app.Status, &app.AppliedAt,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &app, nil
}

// GetByUserID retrieves all applications for a user, newest first
func (r *applicationRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Application, error) {
	query := `
		SELECT id, user_id, resume_id, job_id, company_id, cover_letter, status, applied_at
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.ResumeID, &app.JobID, &app.CompanyID,
			&app.CoverLetter, &app.Status, &app.AppliedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the user/job combination
func (r *applicationRepo) CheckExists(ctx context.Context, userID, jobID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(&exists)
	return exists, err
}
