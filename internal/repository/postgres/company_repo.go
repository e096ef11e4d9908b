package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
)

type companyRepo struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) domain.CompanyRepository {
	return &companyRepo{db: db}
}

// GetByName matches the name exactly; the lowest id wins when names repeat
func (r *companyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT id, name FROM companies WHERE name = $1 ORDER BY id LIMIT 1`
	var c domain.Company
	if err := r.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, mapNoRows(err)
	}
	return &c, nil
}
