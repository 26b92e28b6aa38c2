package controller_catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
)

type StatsController struct {
	StatsUsecase catalog_interface.StatsUsecase
}

func NewStatsController(uc catalog_interface.StatsUsecase) *StatsController {
	return &StatsController{StatsUsecase: uc}
}

func (c *StatsController) GetStats(ctx *gin.Context) {
	controller.PageResponse(ctx, c.StatsUsecase.GetStats(ctx.Request.Context()))
}
