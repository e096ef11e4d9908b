package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
)

type userRepo struct {
	db DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, email FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email FROM users WHERE username = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}
