package route_catalog

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller/controller_catalog"
	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/usecase/usecase_catalog"
)

func NewBandRouter(catalog *usecase_catalog.Catalog, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewBandController(catalog.Bands)

	bandGroup := group.Group("/band")
	{
		bandGroup.GET("/random", ctrl.RandomBand)
		bandGroup.GET("/search", ctrl.SearchBands)
		bandGroup.GET("/:id", ctrl.GetBand)
	}
}

func NewAlbumRouter(catalog *usecase_catalog.Catalog, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewAlbumController(catalog.Albums)

	albumGroup := group.Group("/album")
	{
		albumGroup.GET("/search", ctrl.SearchAlbums)
		albumGroup.GET("/:id", ctrl.GetAlbum)
	}
}

func NewMemberRouter(catalog *usecase_catalog.Catalog, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewMemberController(catalog.Members)
	group.GET("/artist/:id", ctrl.GetMember)
}

func NewLyricsRouter(catalog *usecase_catalog.Catalog, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewLyricsController(catalog.Lyrics)
	group.GET("/lyrics/:id", ctrl.GetLyrics)
}

func NewStatsRouter(catalog *usecase_catalog.Catalog, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewStatsController(catalog.Stats)
	group.GET("/stats", ctrl.GetStats)
}

func NewEventRouter(events *broadcast.Broadcaster, keepAlive time.Duration, group *gin.RouterGroup) {
	ctrl := controller_catalog.NewEventController(events, keepAlive)

	eventGroup := group.Group("/events")
	{
		eventGroup.GET("", ctrl.Stream)
		eventGroup.GET("/stats", ctrl.Stats)
	}
}
