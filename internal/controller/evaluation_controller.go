package controller

import (
	"assessment_engine/internal/service"
	"assessment_engine/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	EvaluationService *service.EvaluationService
	AttemptService    *service.AttemptService
	AccessService     *service.AccessService
}

func NewEvaluationController(evaluationService *service.EvaluationService, attemptService *service.AttemptService, accessService *service.AccessService) *EvaluationController {
	return &EvaluationController{
		EvaluationService: evaluationService,
		AttemptService:    attemptService,
		AccessService:     accessService,
	}
}

// @Summary 获取作答用评测
// @Description 返回题目与选项，不含答案；需要当前用户可作答
// @Tags 评测
// @Security BearerAuth
// @Produce json
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=service.EvaluationView}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /evaluations/{id} [get]
func (c *EvaluationController) GetForAttempt(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.AttemptService.GetEvaluationForAttempt(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 查询作答资格
// @Tags 评测
// @Security BearerAuth
// @Produce json
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=service.Eligibility}
// @Router /evaluations/{id}/eligibility [get]
func (c *EvaluationController) Eligibility(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	el, err := c.AccessService.Eligibility(ctx.Request.Context(), id, caller.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, el)
}

// @Summary 创建评测
// @Tags 评测管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sectionId path int true "章节ID"
// @Param evaluation body service.EvaluationRequest true "评测信息"
// @Success 201 {object} util.Response{data=model.Evaluation}
// @Router /teacher/sections/{sectionId}/evaluations [post]
func (c *EvaluationController) CreateEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	sectionID, ok := pathID(ctx, "sectionId")
	if !ok {
		return
	}

	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.EvaluationService.CreateEvaluation(ctx.Request.Context(), sectionID, caller, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, e)
}

// @Summary 章节下的评测列表
// @Tags 评测管理
// @Security BearerAuth
// @Produce json
// @Param sectionId path int true "章节ID"
// @Success 200 {object} util.Response{data=[]model.Evaluation}
// @Router /teacher/sections/{sectionId}/evaluations [get]
func (c *EvaluationController) ListSectionEvaluations(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	sectionID, ok := pathID(ctx, "sectionId")
	if !ok {
		return
	}

	list, err := c.EvaluationService.ListSectionEvaluations(ctx.Request.Context(), sectionID, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: int64(len(list))})
}

// @Summary 获取评测详情（含答案）
// @Tags 评测管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response{data=model.Evaluation}
// @Router /teacher/evaluations/{id} [get]
func (c *EvaluationController) GetEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	e, err := c.EvaluationService.GetEvaluation(ctx.Request.Context(), id, caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary 更新评测
// @Tags 评测管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Param evaluation body service.EvaluationRequest true "评测信息，questions 字段被忽略"
// @Success 200 {object} util.Response{data=model.Evaluation}
// @Router /teacher/evaluations/{id} [put]
func (c *EvaluationController) UpdateEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.EvaluationService.UpdateEvaluation(ctx.Request.Context(), id, caller, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary 删除评测
// @Tags 评测管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "评测ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /teacher/evaluations/{id} [delete]
func (c *EvaluationController) DeleteEvaluation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.EvaluationService.DeleteEvaluation(ctx.Request.Context(), id, caller); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 添加题目
// @Tags 评测管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评测ID"
// @Param question body service.QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /teacher/evaluations/{id}/questions [post]
func (c *EvaluationController) AddQuestion(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.EvaluationService.AddQuestion(ctx.Request.Context(), id, caller, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 更新题目
// @Description 整体替换题目内容与选项
// @Tags 评测管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param question body service.QuestionRequest true "题目"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /teacher/questions/{id} [put]
func (c *EvaluationController) UpdateQuestion(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.EvaluationService.UpdateQuestion(ctx.Request.Context(), id, caller, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 评测管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [delete]
func (c *EvaluationController) DeleteQuestion(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.EvaluationService.DeleteQuestion(ctx.Request.Context(), id, caller); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
