package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/util"
	"assessment_engine/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultPassingScore = 60

type EvaluationService struct {
	Repo     *repository.EvaluationRepository
	Attempts *repository.AttemptRepository
	Catalog  EvaluationCatalog
	Access   *AccessService
}

func NewEvaluationService(repo *repository.EvaluationRepository, attempts *repository.AttemptRepository, catalog EvaluationCatalog, access *AccessService) *EvaluationService {
	return &EvaluationService{
		Repo:     repo,
		Attempts: attempts,
		Catalog:  catalog,
		Access:   access,
	}
}

type EvaluationRequest struct {
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description"`
	IsExam         bool              `json:"isExam"`
	PassingScore   *float64          `json:"passingScore"`
	MaxAttempts    *int              `json:"maxAttempts"`
	AvailableUntil *time.Time        `json:"availableUntil"`
	Questions      []QuestionRequest `json:"questions"`
}

type QuestionRequest struct {
	Type        model.QuestionType `json:"type" binding:"required"`
	Text        string             `json:"text" binding:"required"`
	Order       int                `json:"order"`
	Explanation string             `json:"explanation"`
	Options     []OptionRequest    `json:"options"`
	// 判断题未提供选项时，用于生成默认选项的正确答案
	Answer *bool `json:"answer"`
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

func (r *EvaluationRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return util.ValidationError("title is required")
	}
	if r.PassingScore != nil && (*r.PassingScore < 0 || *r.PassingScore > 100) {
		return util.ValidationError("passing score must be between 0 and 100")
	}
	if r.MaxAttempts != nil && *r.MaxAttempts < 1 {
		return util.ValidationError("max attempts must be at least 1")
	}
	return nil
}

// apply 未提供 passingScore 时保留原值；maxAttempts 为空表示不限次数
func (r *EvaluationRequest) apply(e *model.Evaluation) {
	e.Title = strings.TrimSpace(r.Title)
	e.Description = r.Description
	e.IsExam = r.IsExam
	if r.PassingScore != nil {
		e.PassingScore = *r.PassingScore
	}
	e.MaxAttempts = r.MaxAttempts
	e.AvailableUntil = r.AvailableUntil
}

// build 校验题目并生成模型；order 为 0 时使用 fallbackOrder
func (r *QuestionRequest) build(fallbackOrder int) (*model.Question, error) {
	if !r.Type.Valid() {
		return nil, util.ValidationError("unknown question type %q", r.Type)
	}
	if strings.TrimSpace(r.Text) == "" {
		return nil, util.ValidationError("question text is required")
	}

	q := &model.Question{
		Type:        r.Type,
		Text:        strings.TrimSpace(r.Text),
		Order:       r.Order,
		Explanation: r.Explanation,
	}
	if q.Order == 0 {
		q.Order = fallbackOrder
	}

	options := r.Options
	if r.Type == model.QuestionBoolean && len(options) == 0 {
		if r.Answer == nil {
			return nil, util.ValidationError("boolean question needs options or an answer")
		}
		options = []OptionRequest{
			{Text: model.BooleanTrueLabel, IsCorrect: *r.Answer},
			{Text: model.BooleanFalseLabel, IsCorrect: !*r.Answer},
		}
	}

	correct := 0
	for i, o := range options {
		text := strings.TrimSpace(o.Text)
		if text == "" {
			return nil, util.ValidationError("option %d text is required", i+1)
		}
		if o.IsCorrect {
			correct++
		}
		q.Options = append(q.Options, model.QuestionOption{Text: text, IsCorrect: o.IsCorrect, Order: i + 1})
	}

	switch r.Type {
	case model.QuestionBoolean:
		if len(options) != 2 || correct != 1 {
			return nil, util.ValidationError("boolean question needs two options with exactly one correct")
		}
	case model.QuestionMultiple:
		if len(options) < 2 || correct < 1 {
			return nil, util.ValidationError("multiple choice question needs at least two options and one correct")
		}
	}
	return q, nil
}

func (s *EvaluationService) CreateEvaluation(ctx context.Context, sectionID uint, caller model.Caller, req EvaluationRequest) (*model.Evaluation, error) {
	if _, err := s.Access.section(ctx, sectionID); err != nil {
		return nil, err
	}
	if err := s.Access.AuthorizeInstructor(ctx, sectionID, caller); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	e := &model.Evaluation{
		SectionID:    sectionID,
		PassingScore: defaultPassingScore,
		CreatedBy:    caller.UserID,
		UpdatedBy:    caller.UserID,
	}
	req.apply(e)
	for i := range req.Questions {
		q, err := req.Questions[i].build(i + 1)
		if err != nil {
			return nil, err
		}
		e.Questions = append(e.Questions, *q)
	}

	if err := s.Repo.CreateEvaluation(ctx, e); err != nil {
		return nil, fmt.Errorf("create evaluation: %w", err)
	}
	logger.Log.Info("Evaluation created",
		zap.Uint("evaluationId", e.ID),
		zap.Uint("sectionId", sectionID),
		zap.Uint("userId", caller.UserID))
	return e, nil
}

// UpdateEvaluation 只修改评测属性，题目通过题目接口维护
func (s *EvaluationService) UpdateEvaluation(ctx context.Context, id uint, caller model.Caller, req EvaluationRequest) (*model.Evaluation, error) {
	e, err := s.authorize(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	if len(req.Questions) > 0 {
		return nil, util.ValidationError("questions are maintained through the question endpoints")
	}

	// 已有作答时及格线不可改，否则已存的 passed 与分数不再一致
	previousPassing := e.PassingScore
	req.apply(e)
	if e.PassingScore != previousPassing {
		if err := s.ensureNoAttempts(ctx, id); err != nil {
			return nil, err
		}
	}
	e.UpdatedBy = caller.UserID
	if err := s.Repo.UpdateEvaluation(ctx, e); err != nil {
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	s.Catalog.Invalidate(ctx, id)
	return s.GetEvaluation(ctx, id, caller)
}

// DeleteEvaluation 已有作答记录的评测不能删除
func (s *EvaluationService) DeleteEvaluation(ctx context.Context, id uint, caller model.Caller) error {
	if _, err := s.authorize(ctx, id, caller); err != nil {
		return err
	}
	if err := s.ensureNoAttempts(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteEvaluation(ctx, id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	s.Catalog.Invalidate(ctx, id)
	logger.Log.Info("Evaluation deleted", zap.Uint("evaluationId", id), zap.Uint("userId", caller.UserID))
	return nil
}

// GetEvaluation 返回含答案的完整定义
func (s *EvaluationService) GetEvaluation(ctx context.Context, id uint, caller model.Caller) (*model.Evaluation, error) {
	if _, err := s.authorize(ctx, id, caller); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetEvaluation(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrEvaluationNotFound)
	}
	return e, nil
}

func (s *EvaluationService) ListSectionEvaluations(ctx context.Context, sectionID uint, caller model.Caller) ([]model.Evaluation, error) {
	if _, err := s.Access.section(ctx, sectionID); err != nil {
		return nil, err
	}
	if err := s.Access.AuthorizeInstructor(ctx, sectionID, caller); err != nil {
		return nil, err
	}
	es, err := s.Repo.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return es, nil
}

func (s *EvaluationService) AddQuestion(ctx context.Context, evaluationID uint, caller model.Caller, req QuestionRequest) (*model.Question, error) {
	if _, err := s.authorize(ctx, evaluationID, caller); err != nil {
		return nil, err
	}
	next, err := s.Repo.NextQuestionOrder(ctx, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("next question order: %w", err)
	}
	q, err := req.build(next)
	if err != nil {
		return nil, err
	}
	q.EvaluationID = evaluationID
	if err := s.Repo.CreateQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	s.Catalog.Invalidate(ctx, evaluationID)
	return q, nil
}

// UpdateQuestion 整体替换题目内容与选项
func (s *EvaluationService) UpdateQuestion(ctx context.Context, questionID uint, caller model.Caller, req QuestionRequest) (*model.Question, error) {
	existing, err := s.Repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	if _, err := s.authorize(ctx, existing.EvaluationID, caller); err != nil {
		return nil, err
	}
	if err := s.ensureNoAttempts(ctx, existing.EvaluationID); err != nil {
		return nil, err
	}
	q, err := req.build(existing.Order)
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.EvaluationID = existing.EvaluationID
	if err := s.Repo.ReplaceQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	s.Catalog.Invalidate(ctx, existing.EvaluationID)
	return q, nil
}

func (s *EvaluationService) DeleteQuestion(ctx context.Context, questionID uint, caller model.Caller) error {
	existing, err := s.Repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return notFound(err, util.ErrQuestionNotFound)
	}
	if _, err := s.authorize(ctx, existing.EvaluationID, caller); err != nil {
		return err
	}
	if err := s.ensureNoAttempts(ctx, existing.EvaluationID); err != nil {
		return err
	}
	if err := s.Repo.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	s.Catalog.Invalidate(ctx, existing.EvaluationID)
	return nil
}

func (s *EvaluationService) authorize(ctx context.Context, id uint, caller model.Caller) (*model.Evaluation, error) {
	e, err := s.Repo.FindEvaluationByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrEvaluationNotFound)
	}
	if err := s.Access.AuthorizeInstructor(ctx, e.SectionID, caller); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EvaluationService) ensureNoAttempts(ctx context.Context, evaluationID uint) error {
	has, err := s.Attempts.HasAttempts(ctx, evaluationID)
	if err != nil {
		return fmt.Errorf("check attempts: %w", err)
	}
	if has {
		return util.ErrEvaluationHasAttempts
	}
	return nil
}
