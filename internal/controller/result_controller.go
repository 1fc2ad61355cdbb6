package controller

import (
	"assessment_engine/internal/service"
	"assessment_engine/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// @Summary 作答成绩
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /attempts/{id}/result [get]
func (c *ResultController) GetAttemptResult(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.ResultService.GetAttemptResult(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 我的作答记录
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /evaluations/{id}/my-attempts [get]
func (c *ResultController) ListMyAttempts(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	list, err := c.ResultService.ListMyAttempts(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: int64(len(list))})
}

// @Summary 评测的全部作答
// @Tags 成绩管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /teacher/evaluations/{id}/attempts [get]
func (c *ResultController) ListAttempts(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	list, err := c.ResultService.ListAttempts(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: int64(len(list))})
}

// @Summary 评测统计
// @Tags 成绩管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=service.EvaluationStats}
// @Router /teacher/evaluations/{id}/stats [get]
func (c *ResultController) Stats(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.ResultService.Stats(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 导出作答记录
// @Description 生成 CSV 并上传到存储，返回文件地址
// @Tags 成绩管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Success 201 {object} util.Response{data=service.ExportResult}
// @Router /teacher/evaluations/{id}/attempts/export [post]
func (c *ResultController) ExportAttempts(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	out, err := c.ResultService.ExportAttempts(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, out)
}
