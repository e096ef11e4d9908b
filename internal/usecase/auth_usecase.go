package usecase

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// GetCurrentUser maps a verified token subject to the stored user
func (u *authUsecase) GetCurrentUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, apperror.Unauthorized("Could not validate credentials")
	}
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
