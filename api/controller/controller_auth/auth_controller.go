package controller_auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/api/middleware"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_auth"
)

type AuthController struct {
	AuthUsecase domain_auth.AuthUsecase
}

func NewAuthController(uc domain_auth.AuthUsecase) *AuthController {
	return &AuthController{AuthUsecase: uc}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req domain_auth.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := c.AuthUsecase.Register(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req domain_auth.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := c.AuthUsecase.Login(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.AuthUsecase.Me(ctx.Request.Context(), ctx.GetString(middleware.ContextUsername))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (c *AuthController) UpdateMe(ctx *gin.Context) {
	var req domain_auth.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := c.AuthUsecase.UpdateMe(ctx.Request.Context(), ctx.GetString(middleware.ContextUsername), req)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (c *AuthController) GetProfile(ctx *gin.Context) {
	profile, err := c.AuthUsecase.GetProfile(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

func (c *AuthController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain_auth.ErrInvalidCredentials):
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, domain_auth.ErrUserExists):
		controller.ErrorResponse(ctx, http.StatusConflict, "USER_EXISTS", err.Error())
	case domain.IsNotFound(err):
		controller.ErrorResponse(ctx, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	default:
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
	}
}
