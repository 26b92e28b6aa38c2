package route_auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller/controller_auth"
	"github.com/metalvault/metalvault/api/middleware"
	"github.com/metalvault/metalvault/bootstrap"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/repository/repository_auth"
	"github.com/metalvault/metalvault/usecase/usecase_auth"
)

func NewAuthRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	repo := repository_auth.NewUserRepository(db, domain.CollectionUser)
	uc := usecase_auth.NewAuthUsecase(repo, env.AccessTokenSecret, env.AccessTokenExpiry(), timeout)
	ctrl := controller_auth.NewAuthController(uc)

	authGroup := group.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Register)
		authGroup.POST("/login", ctrl.Login)
		authGroup.GET("/profile/:username", ctrl.GetProfile)
	}

	meGroup := authGroup.Group("/me", middleware.JwtAuthMiddleware(env.AccessTokenSecret))
	{
		meGroup.GET("", ctrl.Me)
		meGroup.PATCH("", ctrl.UpdateMe)
	}
}
