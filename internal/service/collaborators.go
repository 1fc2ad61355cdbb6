package service

import (
	"assessment_engine/internal/model"
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

// EnrollmentDirectory 选课与缴费状态
type EnrollmentDirectory interface {
	IsEnrolled(ctx context.Context, userID uint, courseCode string) (bool, error)
	HasPaid(ctx context.Context, userID uint, courseCode string) (bool, error)
}

// SectionCatalog 章节到课程的映射
type SectionCatalog interface {
	GetSection(ctx context.Context, sectionID uint) (*model.SectionInfo, error)
}

type InstructorDirectory interface {
	IsInstructorOf(ctx context.Context, userID uint, courseCode string) (bool, error)
}

// EvaluationCatalog 读取完整评测定义；目录变更后调用 Invalidate
type EvaluationCatalog interface {
	GetEvaluation(ctx context.Context, id uint) (*model.Evaluation, error)
	Invalidate(ctx context.Context, id uint)
}

// notFound 将记录不存在转换为业务错误
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
