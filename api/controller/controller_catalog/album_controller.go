package controller_catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
)

type AlbumController struct {
	AlbumUsecase catalog_interface.AlbumUsecase
}

func NewAlbumController(uc catalog_interface.AlbumUsecase) *AlbumController {
	return &AlbumController{AlbumUsecase: uc}
}

func (c *AlbumController) GetAlbum(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	controller.PageResponse(ctx, c.AlbumUsecase.GetAlbum(ctx.Request.Context(), id))
}

func (c *AlbumController) SearchAlbums(ctx *gin.Context) {
	controller.PageResponse(ctx, c.AlbumUsecase.SearchAlbums(ctx.Request.Context(), ctx.Query("query")))
}
