package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/util"
	"assessment_engine/pkg/logger"
	"assessment_engine/pkg/monitoring"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReopenService struct {
	DB       *gorm.DB
	Reopens  *repository.ReopenRepository
	Attempts *repository.AttemptRepository
	Access   *AccessService
	Now      func() time.Time
}

func NewReopenService(db *gorm.DB, reopens *repository.ReopenRepository, attempts *repository.AttemptRepository, access *AccessService) *ReopenService {
	return &ReopenService{
		DB:       db,
		Reopens:  reopens,
		Attempts: attempts,
		Access:   access,
		Now:      time.Now,
	}
}

func (s *ReopenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// RequestReopen 仅当次数用尽是唯一阻碍时才允许申请
func (s *ReopenService) RequestReopen(ctx context.Context, evaluationID uint, caller model.Caller, justification string) (*model.EvaluationReopenRequest, error) {
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return nil, util.ValidationError("justification is required")
	}

	el, err := s.Access.Eligibility(ctx, evaluationID, caller.UserID)
	if err != nil {
		return nil, err
	}
	switch el.Reason {
	case ReasonNoAccess:
		return nil, util.ErrPermissionDenied
	case ReasonClosed:
		return nil, util.ErrEvaluationClosed
	case ReasonOK:
		return nil, util.ErrAttemptsRemaining
	}

	passed, err := s.Attempts.HasPassed(ctx, evaluationID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("check passed attempts: %w", err)
	}
	if passed {
		return nil, util.ErrAlreadyPassed
	}

	req := &model.EvaluationReopenRequest{
		EvaluationID:  evaluationID,
		UserID:        caller.UserID,
		Justification: justification,
		Status:        model.ReopenPending,
	}
	// 借用配额行锁串行化同一用户的并发申请
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Attempts.WithTx(tx).LockQuota(ctx, evaluationID, caller.UserID); err != nil {
			return err
		}
		reopens := s.Reopens.WithTx(tx)
		pending, err := reopens.HasPending(ctx, evaluationID, caller.UserID)
		if err != nil {
			return err
		}
		if pending {
			return util.ErrReopenAlreadyPending
		}
		return reopens.Create(ctx, req)
	})
	if err != nil {
		if util.KindOf(err) != 0 {
			return nil, err
		}
		return nil, fmt.Errorf("create reopen request: %w", err)
	}

	monitoring.ReopenDecisions.WithLabelValues(string(model.ReopenPending)).Inc()
	logger.Log.Info("Reopen requested",
		zap.Uint("requestId", req.ID),
		zap.Uint("evaluationId", evaluationID),
		zap.Uint("userId", caller.UserID))
	return req, nil
}

// Approve 通过申请并授予一次额外作答机会
func (s *ReopenService) Approve(ctx context.Context, requestID uint, reviewer model.Caller, note string) (*model.EvaluationReopenRequest, error) {
	return s.resolve(ctx, requestID, reviewer, note, model.ReopenApproved)
}

func (s *ReopenService) Reject(ctx context.Context, requestID uint, reviewer model.Caller, note string) (*model.EvaluationReopenRequest, error) {
	return s.resolve(ctx, requestID, reviewer, note, model.ReopenRejected)
}

func (s *ReopenService) resolve(ctx context.Context, requestID uint, reviewer model.Caller, note string, status model.ReopenStatus) (*model.EvaluationReopenRequest, error) {
	req, err := s.Reopens.FindByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, util.ErrReopenNotFound)
	}
	e, err := s.Access.loadEvaluation(ctx, req.EvaluationID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.AuthorizeInstructor(ctx, e.SectionID, reviewer); err != nil {
		return nil, err
	}
	if req.Status != model.ReopenPending {
		return nil, util.ErrReopenAlreadyResolved
	}

	at := s.now()
	note = strings.TrimSpace(note)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.Reopens.WithTx(tx).Resolve(ctx, req.ID, status, reviewer.UserID, note, at)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrReopenAlreadyResolved
		}
		if status == model.ReopenApproved {
			return s.Attempts.WithTx(tx).AddBonus(ctx, req.EvaluationID, req.UserID, 1)
		}
		return nil
	})
	if err != nil {
		if util.KindOf(err) != 0 {
			return nil, err
		}
		return nil, fmt.Errorf("resolve reopen request: %w", err)
	}

	req.Status = status
	req.ReviewedBy = &reviewer.UserID
	req.ReviewedAt = &at
	req.ReviewNote = note

	monitoring.ReopenDecisions.WithLabelValues(string(status)).Inc()
	logger.Log.Info("Reopen request resolved",
		zap.Uint("requestId", req.ID),
		zap.String("status", string(status)),
		zap.Uint("reviewerId", reviewer.UserID))
	return req, nil
}

// ListRequests 教师查看某评测的申请，status 为空表示全部
func (s *ReopenService) ListRequests(ctx context.Context, evaluationID uint, caller model.Caller, status model.ReopenStatus) ([]model.EvaluationReopenRequest, error) {
	if status != "" && !status.Valid() {
		return nil, util.ValidationError("unknown status %q", status)
	}
	e, err := s.Access.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.AuthorizeInstructor(ctx, e.SectionID, caller); err != nil {
		return nil, err
	}
	reqs, err := s.Reopens.ListByEvaluation(ctx, evaluationID, status)
	if err != nil {
		return nil, fmt.Errorf("list reopen requests: %w", err)
	}
	return reqs, nil
}

func (s *ReopenService) ListMyRequests(ctx context.Context, caller model.Caller) ([]model.EvaluationReopenRequest, error) {
	reqs, err := s.Reopens.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list reopen requests: %w", err)
	}
	return reqs, nil
}
