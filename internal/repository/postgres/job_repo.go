package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
)

type jobRepo struct {
	db DBTX
}

func NewJobRepository(db DBTX) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, title, company, company_id FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(&job.ID, &job.Title, &job.Company, &job.CompanyID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &job, nil
}
