package domain_auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUserExists 用户名或邮箱已被占用
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	FavoriteBands  []int64            `bson:"favorite_bands" json:"favorite_bands"`
	FavoriteAlbums []int64            `bson:"favorite_albums" json:"favorite_albums"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profile 公开资料，不含邮箱
type Profile struct {
	Username       string    `json:"username"`
	FavoriteBands  []int64   `json:"favorite_bands"`
	FavoriteAlbums []int64   `json:"favorite_albums"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) Profile() Profile {
	return Profile{
		Username:       u.Username,
		FavoriteBands:  u.FavoriteBands,
		FavoriteAlbums: u.FavoriteAlbums,
		CreatedAt:      u.CreatedAt,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserUpdateRequest 为空的字段不修改
type UserUpdateRequest struct {
	Email          *string  `json:"email" binding:"omitempty,email"`
	Password       *string  `json:"password" binding:"omitempty,min=8"`
	FavoriteBands  *[]int64 `json:"favorite_bands"`
	FavoriteAlbums *[]int64 `json:"favorite_albums"`
}

type JwtCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, username string) (*User, error)
	UpdateMe(ctx context.Context, username string, req UserUpdateRequest) (*User, error)
	GetProfile(ctx context.Context, username string) (Profile, error)
}
