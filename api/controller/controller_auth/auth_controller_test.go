package controller_auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/middleware"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_auth"
	"github.com/metalvault/metalvault/domain/mocks"
	"github.com/metalvault/metalvault/util/tokenutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "secret"

func newRouter(uc *mocks.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewAuthController(uc)
	r.POST("/auth/register", ctrl.Register)
	r.POST("/auth/login", ctrl.Login)
	r.GET("/auth/profile/:username", ctrl.GetProfile)
	me := r.Group("/auth/me", middleware.JwtAuthMiddleware(secret))
	me.GET("", ctrl.Me)
	me.PATCH("", ctrl.UpdateMe)
	return r
}

func do(r *gin.Engine, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	req := domain_auth.RegisterRequest{Username: "euronymous", Email: "e@example.com", Password: "deathlikesilence"}
	uc.On("Register", mock.Anything, req).Return(&domain_auth.User{Username: "euronymous", Email: "e@example.com", HashedPassword: "x"}, nil)

	w := do(newRouter(uc), http.MethodPost, "/auth/register",
		`{"username":"euronymous","email":"e@example.com","password":"deathlikesilence"}`, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"euronymous"`)
	assert.NotContains(t, w.Body.String(), "hashed_password")
}

func TestRegisterValidation(t *testing.T) {
	uc := &mocks.AuthUsecase{}

	w := do(newRouter(uc), http.MethodPost, "/auth/register", `{"username":"e","email":"nope","password":"short"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterConflict(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	uc.On("Register", mock.Anything, mock.Anything).Return(nil, domain_auth.ErrUserExists)

	w := do(newRouter(uc), http.MethodPost, "/auth/register",
		`{"username":"euronymous","email":"e@example.com","password":"deathlikesilence"}`, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailure(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	uc.On("Login", mock.Anything, mock.Anything).Return(domain_auth.LoginResponse{}, domain_auth.ErrInvalidCredentials)

	w := do(newRouter(uc), http.MethodPost, "/auth/login", `{"username":"euronymous","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	r := newRouter(uc)

	w := do(r, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokenutil.CreateAccessToken(&domain_auth.User{Username: "euronymous"}, secret, time.Hour)
	require.NoError(t, err)
	uc.On("Me", mock.Anything, "euronymous").Return(&domain_auth.User{Username: "euronymous"}, nil)

	w = do(r, http.MethodGet, "/auth/me", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "euronymous")
}

func TestProfileNotFound(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	uc.On("GetProfile", mock.Anything, "ghost").Return(domain_auth.Profile{}, fmt.Errorf("user %q: %w", "ghost", domain.ErrNotFound))

	w := do(newRouter(uc), http.MethodGet, "/auth/profile/ghost", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
