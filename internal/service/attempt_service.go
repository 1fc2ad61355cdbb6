package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/util"
	"assessment_engine/pkg/logger"
	"assessment_engine/pkg/monitoring"
	"assessment_engine/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 唯一索引冲突时的最大重试次数
const maxStartRetries = 3

type AttemptService struct {
	DB       *gorm.DB
	Attempts *repository.AttemptRepository
	Catalog  EvaluationCatalog
	Access   *AccessService
	Now      func() time.Time
}

func NewAttemptService(db *gorm.DB, attempts *repository.AttemptRepository, catalog EvaluationCatalog, access *AccessService) *AttemptService {
	return &AttemptService{
		DB:       db,
		Attempts: attempts,
		Catalog:  catalog,
		Access:   access,
		Now:      time.Now,
	}
}

// ScoreResult 提交后的评分结果
type ScoreResult struct {
	AttemptID      uint      `json:"attemptId"`
	EvaluationID   uint      `json:"evaluationId"`
	Sequence       int       `json:"sequence"`
	Score          float64   `json:"score"`
	Passed         bool      `json:"passed"`
	CorrectCount   int       `json:"correctCount"`
	TotalQuestions int       `json:"totalQuestions"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// EvaluationView 作答时看到的评测，不含答案与解析
type EvaluationView struct {
	ID             uint           `json:"id"`
	SectionID      uint           `json:"sectionId"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	IsExam         bool           `json:"isExam"`
	PassingScore   float64        `json:"passingScore"`
	MaxAttempts    *int           `json:"maxAttempts"`
	AvailableUntil *time.Time     `json:"availableUntil,omitempty"`
	Questions      []QuestionView `json:"questions"`
	Eligibility    *Eligibility   `json:"eligibility"`
}

type QuestionView struct {
	ID      uint               `json:"id"`
	Type    model.QuestionType `json:"type"`
	Text    string             `json:"text"`
	Order   int                `json:"order"`
	Options []OptionView       `json:"options"`
}

type OptionView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// SubmitRequest 提交答案的请求体
type SubmitRequest struct {
	Answers []AnswerInput `json:"answers"`
}

type AnswerInput struct {
	QuestionID        uint   `json:"questionId" binding:"required"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
}

// Selections 按题目归并所选选项，同一题重复出现视为非法
func (r SubmitRequest) Selections() (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(r.Answers))
	for _, a := range r.Answers {
		if _, dup := out[a.QuestionID]; dup {
			return nil, util.ValidationError("question %d answered more than once", a.QuestionID)
		}
		out[a.QuestionID] = a.SelectedOptionIDs
	}
	return out, nil
}

func (s *AttemptService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// GetEvaluationForAttempt 返回可作答的评测内容
func (s *AttemptService) GetEvaluationForAttempt(ctx context.Context, evaluationID uint, caller model.Caller) (*EvaluationView, error) {
	e, err := s.Access.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	el, err := s.Access.eligibility(ctx, e, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !el.CanAttempt {
		return nil, el.Err()
	}

	view := &EvaluationView{
		ID:             e.ID,
		SectionID:      e.SectionID,
		Title:          e.Title,
		Description:    e.Description,
		IsExam:         e.IsExam,
		PassingScore:   e.PassingScore,
		MaxAttempts:    e.MaxAttempts,
		AvailableUntil: e.AvailableUntil,
		Questions:      make([]QuestionView, 0, len(e.Questions)),
		Eligibility:    el,
	}
	for _, q := range e.Questions {
		qv := QuestionView{ID: q.ID, Type: q.Type, Text: q.Text, Order: q.Order}
		for _, o := range q.Options {
			qv.Options = append(qv.Options, OptionView{ID: o.ID, Text: o.Text, Order: o.Order})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// StartAttempt 在配额行锁内分配下一个作答序号
func (s *AttemptService) StartAttempt(ctx context.Context, evaluationID uint, caller model.Caller) (*model.EvaluationAttempt, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.StartAttempt")
	defer span.End()
	span.SetAttributes(attribute.Int64("evaluation.id", int64(evaluationID)), attribute.Int64("user.id", int64(caller.UserID)))

	e, err := s.Access.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	el, err := s.Access.eligibility(ctx, e, caller.UserID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if !el.CanAttempt {
		s.rejected(e.ID, caller.UserID, el.Reason)
		return nil, el.Err()
	}

	var lastErr error
	for i := 0; i < maxStartRetries; i++ {
		attempt, err := s.insertAttempt(ctx, e, caller.UserID)
		if err == nil {
			monitoring.AttemptsStarted.Inc()
			logger.Log.Info("Attempt started",
				zap.Uint("evaluationId", e.ID),
				zap.Uint("userId", caller.UserID),
				zap.Int("sequence", attempt.Sequence))
			return attempt, nil
		}
		if errors.Is(err, util.ErrQuotaExhausted) {
			s.rejected(e.ID, caller.UserID, ReasonQuotaExhausted)
			return nil, err
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			tracing.RecordError(span, err)
			return nil, fmt.Errorf("start attempt: %w", err)
		}
		lastErr = err
		logger.Log.Debug("Attempt slot taken, retrying",
			zap.Uint("evaluationId", e.ID),
			zap.Uint("userId", caller.UserID),
			zap.Int("try", i+1))
	}
	logger.Log.Warn("Attempt slot still contended after retries",
		zap.Uint("evaluationId", e.ID),
		zap.Uint("userId", caller.UserID),
		zap.Error(lastErr))
	tracing.RecordError(span, lastErr)
	return nil, util.ErrAttemptContended
}

func (s *AttemptService) insertAttempt(ctx context.Context, e *model.Evaluation, userID uint) (*model.EvaluationAttempt, error) {
	var attempt *model.EvaluationAttempt
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Attempts.WithTx(tx)
		quota, err := repo.LockQuota(ctx, e.ID, userID)
		if err != nil {
			return err
		}
		count, err := repo.CountAttempts(ctx, e.ID, userID)
		if err != nil {
			return err
		}
		if e.MaxAttempts != nil && int(count) >= *e.MaxAttempts+quota.BonusAttempts {
			return util.ErrQuotaExhausted
		}
		last, err := repo.LastSequence(ctx, e.ID, userID)
		if err != nil {
			return err
		}
		attempt = &model.EvaluationAttempt{
			EvaluationID: e.ID,
			UserID:       userID,
			Sequence:     last + 1,
			StartedAt:    s.now(),
		}
		return repo.Create(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AttemptService) rejected(evaluationID, userID uint, reason EligibilityReason) {
	monitoring.AttemptRejections.WithLabelValues(string(reason)).Inc()
	logger.Log.Debug("Attempt refused",
		zap.Uint("evaluationId", evaluationID),
		zap.Uint("userId", userID),
		zap.String("reason", string(reason)))
}

// SubmitAnswers 评分并写入答案；每次作答只能提交一次
func (s *AttemptService) SubmitAnswers(ctx context.Context, attemptID uint, caller model.Caller, answers map[uint][]uint) (*ScoreResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.SubmitAnswers")
	defer span.End()
	span.SetAttributes(attribute.Int64("attempt.id", int64(attemptID)))

	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, notFound(err, util.ErrAttemptNotFound)
	}
	if attempt.UserID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Submitted() {
		return nil, util.ErrAttemptSubmitted
	}

	e, err := s.Catalog.GetEvaluation(ctx, attempt.EvaluationID)
	if err != nil {
		return nil, notFound(err, util.ErrEvaluationNotFound)
	}
	// 配额已在开始作答时占用，这里只要求仍有访问权限
	allowed, err := s.Access.hasAccess(ctx, e, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.rejected(e.ID, caller.UserID, ReasonNoAccess)
		return nil, util.ErrPermissionDenied
	}
	graded, err := gradeAnswers(e, answers)
	if err != nil {
		return nil, err
	}

	result := &ScoreResult{
		AttemptID:      attempt.ID,
		EvaluationID:   attempt.EvaluationID,
		Sequence:       attempt.Sequence,
		Score:          graded.Score(),
		CorrectCount:   graded.Correct,
		TotalQuestions: graded.Total,
		SubmittedAt:    s.now(),
	}
	result.Passed = result.Score >= e.PassingScore

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Attempts.WithTx(tx)
		ok, err := repo.MarkSubmitted(ctx, attempt.ID, result.SubmittedAt, result.Score, result.Passed)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrAttemptSubmitted
		}
		for i := range graded.Answers {
			graded.Answers[i].AttemptID = attempt.ID
		}
		return repo.CreateAnswers(ctx, graded.Answers)
	})
	if err != nil {
		if util.KindOf(err) != 0 {
			return nil, err
		}
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("submit attempt: %w", err)
	}

	monitoring.AttemptsSubmitted.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()
	logger.Log.Info("Attempt submitted",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("evaluationId", attempt.EvaluationID),
		zap.Uint("userId", caller.UserID),
		zap.Float64("score", result.Score),
		zap.Bool("passed", result.Passed))
	return result, nil
}

// TakeEvaluation 一次性开始并提交；答案非法时不消耗作答次数
func (s *AttemptService) TakeEvaluation(ctx context.Context, evaluationID uint, caller model.Caller, answers map[uint][]uint) (*ScoreResult, error) {
	e, err := s.Access.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	el, err := s.Access.eligibility(ctx, e, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !el.CanAttempt {
		s.rejected(e.ID, caller.UserID, el.Reason)
		return nil, el.Err()
	}
	if _, err := gradeAnswers(e, answers); err != nil {
		return nil, err
	}

	attempt, err := s.StartAttempt(ctx, evaluationID, caller)
	if err != nil {
		return nil, err
	}
	return s.SubmitAnswers(ctx, attempt.ID, caller, answers)
}
