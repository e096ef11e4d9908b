package usecase_test

import (
	"context"
	"io"

	"jobboard-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByUserAndJob(ctx context.Context, userID, jobID int64) (*domain.Application, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) CheckExists(ctx context.Context, userID, jobID int64) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Resume, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}
