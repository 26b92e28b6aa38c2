package route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/route/route_auth"
	"github.com/metalvault/metalvault/api/route/route_catalog"
	"github.com/metalvault/metalvault/bootstrap"
)

func Setup(app *bootstrap.Application, timeout time.Duration, gin *gin.Engine) {
	db := app.Database()
	api := gin.Group("/api")

	route_catalog.NewBandRouter(app.Catalog, api)
	route_catalog.NewAlbumRouter(app.Catalog, api)
	route_catalog.NewMemberRouter(app.Catalog, api)
	route_catalog.NewLyricsRouter(app.Catalog, api)
	route_catalog.NewStatsRouter(app.Catalog, api)
	route_catalog.NewEventRouter(app.Events, time.Duration(app.Env.EventKeepAlive)*time.Second, api)

	route_auth.NewAuthRouter(app.Env, timeout, db, api)
}
