package usecase_auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_auth"
	"github.com/metalvault/metalvault/util/tokenutil"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	repo        domain_auth.UserRepository
	secret      string
	tokenExpiry time.Duration
	timeout     time.Duration
}

func NewAuthUsecase(repo domain_auth.UserRepository, secret string, tokenExpiry, timeout time.Duration) domain_auth.AuthUsecase {
	return &authUsecase{
		repo:        repo,
		secret:      secret,
		tokenExpiry: tokenExpiry,
		timeout:     timeout,
	}
}

func (uc *authUsecase) Register(ctx context.Context, req domain_auth.RegisterRequest) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &domain_auth.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		HashedPassword: string(hashed),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户不存在与密码错误返回同一个错误
func (uc *authUsecase) Login(ctx context.Context, req domain_auth.LoginRequest) (domain_auth.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if domain.IsNotFound(err) {
			return domain_auth.LoginResponse{}, domain_auth.ErrInvalidCredentials
		}
		return domain_auth.LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return domain_auth.LoginResponse{}, domain_auth.ErrInvalidCredentials
	}

	token, err := tokenutil.CreateAccessToken(user, uc.secret, uc.tokenExpiry)
	if err != nil {
		return domain_auth.LoginResponse{}, err
	}
	return domain_auth.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (uc *authUsecase) Me(ctx context.Context, username string) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.GetByUsername(ctx, username)
}

// UpdateMe 只修改请求中给出的字段
func (uc *authUsecase) UpdateMe(ctx context.Context, username string, req domain_auth.UserUpdateRequest) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
	}
	if req.FavoriteBands != nil {
		user.FavoriteBands = dedupe(*req.FavoriteBands)
	}
	if req.FavoriteAlbums != nil {
		user.FavoriteAlbums = dedupe(*req.FavoriteAlbums)
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *authUsecase) GetProfile(ctx context.Context, username string) (domain_auth.Profile, error) {
	user, err := uc.Me(ctx, username)
	if err != nil {
		return domain_auth.Profile{}, err
	}
	return user.Profile(), nil
}

// dedupe 保持原有顺序去重
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
