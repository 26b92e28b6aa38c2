package controller_catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
)

type BandController struct {
	BandUsecase catalog_interface.BandUsecase
}

func NewBandController(uc catalog_interface.BandUsecase) *BandController {
	return &BandController{BandUsecase: uc}
}

func (c *BandController) GetBand(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	controller.PageResponse(ctx, c.BandUsecase.GetBand(ctx.Request.Context(), id))
}

func (c *BandController) RandomBand(ctx *gin.Context) {
	controller.PageResponse(ctx, c.BandUsecase.RandomBand(ctx.Request.Context()))
}

func (c *BandController) SearchBands(ctx *gin.Context) {
	controller.PageResponse(ctx, c.BandUsecase.SearchBands(ctx.Request.Context(), ctx.Query("query")))
}
