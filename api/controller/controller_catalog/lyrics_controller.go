package controller_catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
)

type LyricsController struct {
	LyricsUsecase catalog_interface.LyricsUsecase
}

func NewLyricsController(uc catalog_interface.LyricsUsecase) *LyricsController {
	return &LyricsController{LyricsUsecase: uc}
}

func (c *LyricsController) GetLyrics(ctx *gin.Context) {
	trackID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}

	var albumID int64
	if raw := ctx.Query("album_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_ID", "album_id must be a positive integer")
			return
		}
		albumID = v
	}

	controller.PageResponse(ctx, c.LyricsUsecase.GetLyrics(ctx.Request.Context(), trackID, albumID))
}
