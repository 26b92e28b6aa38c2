package mocks

import (
	"context"

	"github.com/metalvault/metalvault/domain/domain_auth"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *domain_auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain_auth.User, error) {
	ret := m.Called(ctx, username)
	user, _ := ret.Get(0).(*domain_auth.User)
	return user, ret.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain_auth.User) error {
	return m.Called(ctx, user).Error(0)
}

type AuthUsecase struct{ mock.Mock }

func (m *AuthUsecase) Register(ctx context.Context, req domain_auth.RegisterRequest) (*domain_auth.User, error) {
	ret := m.Called(ctx, req)
	user, _ := ret.Get(0).(*domain_auth.User)
	return user, ret.Error(1)
}

func (m *AuthUsecase) Login(ctx context.Context, req domain_auth.LoginRequest) (domain_auth.LoginResponse, error) {
	ret := m.Called(ctx, req)
	return ret.Get(0).(domain_auth.LoginResponse), ret.Error(1)
}

func (m *AuthUsecase) Me(ctx context.Context, username string) (*domain_auth.User, error) {
	ret := m.Called(ctx, username)
	user, _ := ret.Get(0).(*domain_auth.User)
	return user, ret.Error(1)
}

func (m *AuthUsecase) UpdateMe(ctx context.Context, username string, req domain_auth.UserUpdateRequest) (*domain_auth.User, error) {
	ret := m.Called(ctx, username, req)
	user, _ := ret.Get(0).(*domain_auth.User)
	return user, ret.Error(1)
}

func (m *AuthUsecase) GetProfile(ctx context.Context, username string) (domain_auth.Profile, error) {
	ret := m.Called(ctx, username)
	return ret.Get(0).(domain_auth.Profile), ret.Error(1)
}
