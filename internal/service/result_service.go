package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/util"
	"assessment_engine/pkg/logger"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResultService struct {
	Attempts *repository.AttemptRepository
	Catalog  EvaluationCatalog
	Access   *AccessService
	Storage  *StorageService
}

func NewResultService(attempts *repository.AttemptRepository, catalog EvaluationCatalog, access *AccessService, storage *StorageService) *ResultService {
	return &ResultService{
		Attempts: attempts,
		Catalog:  catalog,
		Access:   access,
		Storage:  storage,
	}
}

// AttemptResult 单次作答的成绩与逐题明细
type AttemptResult struct {
	AttemptID       uint             `json:"attemptId"`
	EvaluationID    uint             `json:"evaluationId"`
	EvaluationTitle string           `json:"evaluationTitle"`
	UserID          uint             `json:"userId"`
	Sequence        int              `json:"sequence"`
	StartedAt       time.Time        `json:"startedAt"`
	SubmittedAt     *time.Time       `json:"submittedAt"`
	Score           float64          `json:"score"`
	PassingScore    float64          `json:"passingScore"`
	Passed          bool             `json:"passed"`
	Questions       []QuestionResult `json:"questions"`
}

type QuestionResult struct {
	QuestionID        uint               `json:"questionId"`
	Type              model.QuestionType `json:"type"`
	Text              string             `json:"text"`
	SelectedOptionIDs []uint             `json:"selectedOptionIds"`
	CorrectOptionIDs  []uint             `json:"correctOptionIds"`
	IsCorrect         bool               `json:"isCorrect"`
	Explanation       string             `json:"explanation"`
}

// EvaluationStats 评测统计
type EvaluationStats struct {
	EvaluationID uint `json:"evaluationId"`
	repository.AttemptStats
}

// ExportResult 导出文件信息
type ExportResult struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

// GetAttemptResult 作答者本人或授课教师可查看
func (s *ResultService) GetAttemptResult(ctx context.Context, attemptID uint, caller model.Caller) (*AttemptResult, error) {
	attempt, err := s.Attempts.FindWithAnswers(ctx, attemptID)
	if err != nil {
		return nil, notFound(err, util.ErrAttemptNotFound)
	}
	e, err := s.Access.loadEvaluation(ctx, attempt.EvaluationID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != caller.UserID {
		if err := s.Access.AuthorizeInstructor(ctx, e.SectionID, caller); err != nil {
			return nil, err
		}
	}
	if !attempt.Submitted() {
		return nil, util.ErrAttemptNotSubmitted
	}

	answers := make(map[uint]model.Answer, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answers[a.QuestionID] = a
	}

	result := &AttemptResult{
		AttemptID:       attempt.ID,
		EvaluationID:    e.ID,
		EvaluationTitle: e.Title,
		UserID:          attempt.UserID,
		Sequence:        attempt.Sequence,
		StartedAt:       attempt.StartedAt,
		SubmittedAt:     attempt.SubmittedAt,
		PassingScore:    e.PassingScore,
		Passed:          attempt.Passed,
		Questions:       make([]QuestionResult, 0, len(attempt.Answers)),
	}
	if attempt.Score != nil {
		result.Score = *attempt.Score
	}
	// 只列出提交时已存在的题目
	for _, q := range e.Questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		selected := a.SelectedOptionIDs
		if selected == nil {
			selected = model.OptionIDs{}
		}
		result.Questions = append(result.Questions, QuestionResult{
			QuestionID:        q.ID,
			Type:              q.Type,
			Text:              q.Text,
			SelectedOptionIDs: selected,
			CorrectOptionIDs:  model.OptionIDs(q.CorrectOptionIDs()).Sorted(),
			IsCorrect:         a.IsCorrect,
			Explanation:       q.Explanation,
		})
	}
	return result, nil
}

// ListAttempts 教师查看全部作答，按用户、序号排序
func (s *ResultService) ListAttempts(ctx context.Context, evaluationID uint, caller model.Caller) ([]model.EvaluationAttempt, error) {
	if _, err := s.authorize(ctx, evaluationID, caller); err != nil {
		return nil, err
	}
	attempts, err := s.Attempts.ListByEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

func (s *ResultService) ListMyAttempts(ctx context.Context, evaluationID uint, caller model.Caller) ([]model.EvaluationAttempt, error) {
	if _, err := s.Access.loadEvaluation(ctx, evaluationID); err != nil {
		return nil, err
	}
	attempts, err := s.Attempts.ListByUser(ctx, evaluationID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

func (s *ResultService) Stats(ctx context.Context, evaluationID uint, caller model.Caller) (*EvaluationStats, error) {
	if _, err := s.authorize(ctx, evaluationID, caller); err != nil {
		return nil, err
	}
	stats, err := s.Attempts.Stats(ctx, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("attempt stats: %w", err)
	}
	stats.AverageScore = round2(stats.AverageScore)
	stats.PassRate = round2(stats.PassRate)
	return &EvaluationStats{EvaluationID: evaluationID, AttemptStats: *stats}, nil
}

var exportHeader = []string{"attempt_id", "user_id", "sequence", "started_at", "submitted_at", "score", "passed"}

// ExportAttempts 导出 CSV 并上传到存储
func (s *ResultService) ExportAttempts(ctx context.Context, evaluationID uint, caller model.Caller) (*ExportResult, error) {
	attempts, err := s.ListAttempts(ctx, evaluationID, caller)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, a := range attempts {
		submitted, score := "", ""
		if a.SubmittedAt != nil {
			submitted = a.SubmittedAt.Format(util.TimeFormat)
		}
		if a.Score != nil {
			score = strconv.FormatFloat(*a.Score, 'f', 2, 64)
		}
		row := []string{
			strconv.FormatUint(uint64(a.ID), 10),
			strconv.FormatUint(uint64(a.UserID), 10),
			strconv.Itoa(a.Sequence),
			a.StartedAt.Format(util.TimeFormat),
			submitted,
			score,
			strconv.FormatBool(a.Passed),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("exports/evaluation-%d/%s.csv", evaluationID, uuid.NewString())
	url, err := s.Storage.Publish(ctx, name, buf.Bytes(), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("publish export: %w", err)
	}
	logger.Log.Info("Attempts exported",
		zap.Uint("evaluationId", evaluationID),
		zap.Uint("userId", caller.UserID),
		zap.Int("rows", len(attempts)),
		zap.String("object", name))
	return &ExportResult{URL: url, Rows: len(attempts)}, nil
}

func (s *ResultService) authorize(ctx context.Context, evaluationID uint, caller model.Caller) (*model.Evaluation, error) {
	e, err := s.Access.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.AuthorizeInstructor(ctx, e.SectionID, caller); err != nil {
		return nil, err
	}
	return e, nil
}
