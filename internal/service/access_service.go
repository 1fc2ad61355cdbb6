package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/util"
	"context"
	"fmt"
	"time"
)

type EligibilityReason string

const (
	ReasonOK             EligibilityReason = "ok"
	ReasonNoAccess       EligibilityReason = "no_access"
	ReasonClosed         EligibilityReason = "closed"
	ReasonQuotaExhausted EligibilityReason = "quota_exhausted"
)

// Eligibility 用户对某评测的作答资格；无访问权限时不返回计数
type Eligibility struct {
	EvaluationID      uint              `json:"evaluationId"`
	CanAttempt        bool              `json:"canAttempt"`
	Reason            EligibilityReason `json:"reason"`
	UsedAttempts      int               `json:"usedAttempts"`
	BonusAttempts     int               `json:"bonusAttempts"`
	AllowedAttempts   *int              `json:"allowedAttempts"` // nil 表示不限
	RemainingAttempts *int              `json:"remainingAttempts"`
}

// Err 不可作答时对应的业务错误
func (e *Eligibility) Err() error {
	switch e.Reason {
	case ReasonNoAccess:
		return util.ErrPermissionDenied
	case ReasonClosed:
		return util.ErrEvaluationClosed
	case ReasonQuotaExhausted:
		return util.ErrQuotaExhausted
	}
	return nil
}

type AccessService struct {
	Catalog     EvaluationCatalog
	Sections    SectionCatalog
	Enrollments EnrollmentDirectory
	Instructors InstructorDirectory
	Attempts    *repository.AttemptRepository
	Now         func() time.Time
}

func NewAccessService(
	catalog EvaluationCatalog,
	sections SectionCatalog,
	enrollments EnrollmentDirectory,
	instructors InstructorDirectory,
	attempts *repository.AttemptRepository,
) *AccessService {
	return &AccessService{
		Catalog:     catalog,
		Sections:    sections,
		Enrollments: enrollments,
		Instructors: instructors,
		Attempts:    attempts,
		Now:         time.Now,
	}
}

func (s *AccessService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AccessService) loadEvaluation(ctx context.Context, id uint) (*model.Evaluation, error) {
	e, err := s.Catalog.GetEvaluation(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrEvaluationNotFound)
	}
	return e, nil
}

func (s *AccessService) section(ctx context.Context, sectionID uint) (*model.SectionInfo, error) {
	info, err := s.Sections.GetSection(ctx, sectionID)
	if err != nil {
		return nil, notFound(err, util.ErrSectionNotFound)
	}
	return info, nil
}

func (s *AccessService) hasAccess(ctx context.Context, e *model.Evaluation, userID uint) (bool, error) {
	info, err := s.section(ctx, e.SectionID)
	if err != nil {
		return false, err
	}
	enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, info.CourseCode)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	if !enrolled {
		return false, nil
	}
	if !info.PaidCourse {
		return true, nil
	}
	paid, err := s.Enrollments.HasPaid(ctx, userID, info.CourseCode)
	if err != nil {
		return false, fmt.Errorf("check payment: %w", err)
	}
	return paid, nil
}

// CanAccess 用户有有效选课，付费课程还需已缴费
func (s *AccessService) CanAccess(ctx context.Context, evaluationID, userID uint) (bool, error) {
	e, err := s.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return false, err
	}
	return s.hasAccess(ctx, e, userID)
}

// CanAttempt 可访问、未截止且仍有剩余次数
func (s *AccessService) CanAttempt(ctx context.Context, evaluationID, userID uint) (bool, error) {
	el, err := s.Eligibility(ctx, evaluationID, userID)
	if err != nil {
		return false, err
	}
	return el.CanAttempt, nil
}

func (s *AccessService) Eligibility(ctx context.Context, evaluationID, userID uint) (*Eligibility, error) {
	e, err := s.loadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return s.eligibility(ctx, e, userID)
}

func (s *AccessService) eligibility(ctx context.Context, e *model.Evaluation, userID uint) (*Eligibility, error) {
	el := &Eligibility{EvaluationID: e.ID}

	ok, err := s.hasAccess(ctx, e, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		el.Reason = ReasonNoAccess
		return el, nil
	}

	used, err := s.Attempts.CountAttempts(ctx, e.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}
	bonus, err := s.Attempts.BonusAttempts(ctx, e.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("load attempt quota: %w", err)
	}
	el.UsedAttempts = int(used)
	el.BonusAttempts = bonus
	if e.MaxAttempts != nil {
		allowed := *e.MaxAttempts + bonus
		remaining := allowed - el.UsedAttempts
		if remaining < 0 {
			remaining = 0
		}
		el.AllowedAttempts = &allowed
		el.RemainingAttempts = &remaining
	}

	switch {
	case e.ClosedAt(s.now()):
		el.Reason = ReasonClosed
	case el.RemainingAttempts != nil && *el.RemainingAttempts == 0:
		el.Reason = ReasonQuotaExhausted
	default:
		el.Reason = ReasonOK
		el.CanAttempt = true
	}
	return el, nil
}

// AuthorizeInstructor 管理员或该章节所属课程的授课教师
func (s *AccessService) AuthorizeInstructor(ctx context.Context, sectionID uint, caller model.Caller) error {
	if caller.IsAdmin() {
		return nil
	}
	info, err := s.section(ctx, sectionID)
	if err != nil {
		return err
	}
	ok, err := s.Instructors.IsInstructorOf(ctx, caller.UserID, info.CourseCode)
	if err != nil {
		return fmt.Errorf("check instructor: %w", err)
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}
