package controller

import (
	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentIdentity 从 AuthMiddleware 写入的 claims 中取出调用者，未认证时返回 false
func currentIdentity(ctx *gin.Context) (model.Identity, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return model.Identity{}, false
	}
	return claims.Identity(), true
}
