package controller_catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
)

type MemberController struct {
	MemberUsecase catalog_interface.MemberUsecase
}

func NewMemberController(uc catalog_interface.MemberUsecase) *MemberController {
	return &MemberController{MemberUsecase: uc}
}

func (c *MemberController) GetMember(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	controller.PageResponse(ctx, c.MemberUsecase.GetMember(ctx.Request.Context(), id))
}
