package controller

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/service"
	"assessment_engine/internal/util"
	"context"

	"github.com/gin-gonic/gin"
)

type ReopenController struct {
	ReopenService *service.ReopenService
}

func NewReopenController(reopenService *service.ReopenService) *ReopenController {
	return &ReopenController{ReopenService: reopenService}
}

type ReopenRequestBody struct {
	Justification string `json:"justification"`
}

type ReviewRequestBody struct {
	Note string `json:"note"`
}

// @Summary 申请重新开放评测
// @Tags 重开申请
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Param body body ReopenRequestBody true "申请理由"
// @Success 201 {object} util.Response{data=model.EvaluationReopenRequest}
// @Failure 409 {object} util.Response
// @Router /evaluations/{id}/request-reopen [post]
func (c *ReopenController) RequestReopen(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body ReopenRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req, err := c.ReopenService.RequestReopen(ctx.Request.Context(), id, caller, body.Justification)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, req)
}

// @Summary 我的重开申请
// @Tags 重开申请
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /reopen-requests/mine [get]
func (c *ReopenController) ListMine(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	list, err := c.ReopenService.ListMyRequests(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: int64(len(list))})
}

// @Summary 评测的重开申请
// @Tags 重开审批
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Param status query string false "pending / approved / rejected"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /teacher/evaluations/{id}/reopen-requests [get]
func (c *ReopenController) ListForEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	status := model.ReopenStatus(ctx.Query("status"))
	list, err := c.ReopenService.ListRequests(ctx.Request.Context(), id, caller, status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: int64(len(list))})
}

// @Summary 通过重开申请
// @Tags 重开审批
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param body body ReviewRequestBody false "审批备注"
// @Success 200 {object} util.Response{data=model.EvaluationReopenRequest}
// @Router /teacher/reopen-requests/{id}/approve [post]
func (c *ReopenController) Approve(ctx *gin.Context) {
	c.review(ctx, c.ReopenService.Approve)
}

// @Summary 拒绝重开申请
// @Tags 重开审批
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param body body ReviewRequestBody false "审批备注"
// @Success 200 {object} util.Response{data=model.EvaluationReopenRequest}
// @Router /teacher/reopen-requests/{id}/reject [post]
func (c *ReopenController) Reject(ctx *gin.Context) {
	c.review(ctx, c.ReopenService.Reject)
}

type reviewFunc func(ctx context.Context, requestID uint, reviewer model.Caller, note string) (*model.EvaluationReopenRequest, error)

func (c *ReopenController) review(ctx *gin.Context, decide reviewFunc) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body ReviewRequestBody
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	req, err := decide(ctx.Request.Context(), id, caller, body.Note)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, req)
}
