// Package testutil 提供基于内存 sqlite 的测试数据库与数据构造函数
package testutil

import (
	"testing"
	"time"

	"assessment_engine/internal/model"
	"assessment_engine/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 每个测试独立的内存库；单连接保证事务串行
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Course 创建课程与章节，返回章节
func Course(t *testing.T, db *gorm.DB, code string, paid bool) model.Section {
	t.Helper()
	mustCreate(t, db, &model.Course{Code: code, Title: code, IsPaid: paid})
	section := model.Section{CourseCode: code, Title: code + " section"}
	mustCreate(t, db, &section)
	return section
}

func Enroll(t *testing.T, db *gorm.DB, userID uint, courseCode, status, payment string) {
	t.Helper()
	mustCreate(t, db, &model.Enrollment{
		UserID:        userID,
		CourseCode:    courseCode,
		Status:        status,
		PaymentStatus: payment,
	})
}

func Instructor(t *testing.T, db *gorm.DB, userID uint, courseCode string) {
	t.Helper()
	mustCreate(t, db, &model.CourseInstructor{UserID: userID, CourseCode: courseCode})
}

// EvaluationOpts 评测构造参数
type EvaluationOpts struct {
	PassingScore   float64
	MaxAttempts    *int
	AvailableUntil *time.Time
	// 多选题数量，每题两个正确选项 + 一个错误选项
	MultipleQuestions int
	// 判断题数量，正确答案为 Verdadero
	BooleanQuestions int
}

func IntPtr(v int) *int { return &v }

// Evaluation 创建评测及题目，返回带题目与选项的完整结构
func Evaluation(t *testing.T, db *gorm.DB, sectionID uint, opts EvaluationOpts) model.Evaluation {
	t.Helper()
	e := model.Evaluation{
		SectionID:      sectionID,
		Title:          "Quiz",
		PassingScore:   opts.PassingScore,
		MaxAttempts:    opts.MaxAttempts,
		AvailableUntil: opts.AvailableUntil,
	}
	order := 0
	for i := 0; i < opts.MultipleQuestions; i++ {
		order++
		e.Questions = append(e.Questions, model.Question{
			Type:  model.QuestionMultiple,
			Text:  "Pick the right ones",
			Order: order,
			Options: []model.QuestionOption{
				{Text: "A", IsCorrect: true, Order: 1},
				{Text: "B", IsCorrect: true, Order: 2},
				{Text: "C", IsCorrect: false, Order: 3},
			},
		})
	}
	for i := 0; i < opts.BooleanQuestions; i++ {
		order++
		e.Questions = append(e.Questions, model.Question{
			Type:  model.QuestionBoolean,
			Text:  "True or false",
			Order: order,
			Options: []model.QuestionOption{
				{Text: model.BooleanTrueLabel, IsCorrect: true, Order: 1},
				{Text: model.BooleanFalseLabel, IsCorrect: false, Order: 2},
			},
		})
	}
	mustCreate(t, db, &e)
	return e
}

// CorrectAnswers 全部答对的作答
func CorrectAnswers(e model.Evaluation) map[uint][]uint {
	out := make(map[uint][]uint, len(e.Questions))
	for _, q := range e.Questions {
		out[q.ID] = q.CorrectOptionIDs()
	}
	return out
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}
