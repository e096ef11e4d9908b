package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
)

type resumeRepo struct {
	db DBTX
}

func NewResumeRepository(db DBTX) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, user_id, filename, uploaded_at,
	COALESCE(skills, ''), COALESCE(keywords, ''), COALESCE(raw_text, '')`

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *resumeRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 AND user_id = $2`
	return r.scanOne(ctx, query, id, userID)
}

func (r *resumeRepo) scanOne(ctx context.Context, query string, args ...any) (*domain.Resume, error) {
	var res domain.Resume
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&res.ID, &res.UserID, &res.Filename, &res.UploadedAt,
		&res.Skills, &res.Keywords, &res.RawText,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &res, nil
}
