package controller

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/util"

	"github.com/gin-gonic/gin"
)

// currentCaller 读取认证中间件写入的用户，未登录时直接返回 401
func currentCaller(ctx *gin.Context) (model.Caller, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return model.Caller{}, false
	}
	return user.Caller(), true
}

// pathID 读取路径ID，非法时返回 400
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParamID(ctx, name)
	if !ok {
		util.BadRequest(ctx, "invalid "+name)
	}
	return id, ok
}
