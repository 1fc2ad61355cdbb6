package controller

import (
	"assessment_engine/internal/service"
	"assessment_engine/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

func bindSelections(ctx *gin.Context) (map[uint][]uint, bool) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return nil, false
	}
	selections, err := req.Selections()
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}
	return selections, true
}

// @Summary 作答评测
// @Description 开始一次作答并立即提交评分
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Param answers body service.SubmitRequest true "答案"
// @Success 201 {object} util.Response{data=service.ScoreResult}
// @Header 201 {string} Location "成绩地址"
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /evaluations/{id}/take [post]
func (c *AttemptController) TakeEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	selections, ok := bindSelections(ctx)
	if !ok {
		return
	}

	result, err := c.AttemptService.TakeEvaluation(ctx.Request.Context(), id, caller, selections)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.Header("Location", fmt.Sprintf("/api/attempts/%d/result", result.AttemptID))
	util.Created(ctx, result)
}

// @Summary 开始作答
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Success 201 {object} util.Response{data=model.EvaluationAttempt}
// @Failure 409 {object} util.Response
// @Router /evaluations/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.AttemptService.StartAttempt(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary 提交答案
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Param answers body service.SubmitRequest true "答案"
// @Success 200 {object} util.Response{data=service.ScoreResult}
// @Failure 409 {object} util.Response
// @Router /attempts/{id}/submit [post]
func (c *AttemptController) SubmitAnswers(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	selections, ok := bindSelections(ctx)
	if !ok {
		return
	}

	result, err := c.AttemptService.SubmitAnswers(ctx.Request.Context(), id, caller, selections)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
