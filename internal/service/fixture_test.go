package service

import (
	"context"
	"testing"
	"time"

	"assessment_engine/internal/config"
	"assessment_engine/internal/model"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/testutil"

	"gorm.io/gorm"
)

const (
	studentID    uint = 1
	otherID      uint = 2
	instructorID uint = 10
	adminID      uint = 99
	courseCode        = "GO-101"
)

var (
	student    = model.Caller{UserID: studentID, Role: model.Student}
	other      = model.Caller{UserID: otherID, Role: model.Student}
	instructor = model.Caller{UserID: instructorID, Role: model.Teacher}
	admin      = model.Caller{UserID: adminID, Role: model.Admin}
)

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB
	now time.Time

	section model.Section

	access      *AccessService
	attempts    *AttemptService
	reopens     *ReopenService
	results     *ResultService
	evaluations *EvaluationService
}

// newFixture 免费课程，学生 1 已选课，用户 10 为授课教师
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		t:   t,
		ctx: context.Background(),
		db:  db,
		now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.section = testutil.Course(t, db, courseCode, false)
	testutil.Enroll(t, db, studentID, courseCode, model.EnrollmentActive, model.PaymentPending)
	testutil.Instructor(t, db, instructorID, courseCode)

	clock := func() time.Time { return f.now }
	evalRepo := repository.NewEvaluationRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	directory := repository.NewDirectoryRepository(db)

	f.access = NewAccessService(evalRepo, directory, directory, directory, attemptRepo)
	f.access.Now = clock
	f.attempts = NewAttemptService(db, attemptRepo, evalRepo, f.access)
	f.attempts.Now = clock
	f.reopens = NewReopenService(db, repository.NewReopenRepository(db), attemptRepo, f.access)
	f.reopens.Now = clock
	f.results = NewResultService(attemptRepo, evalRepo, f.access, NewStorageService(&config.Config{
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}))
	f.evaluations = NewEvaluationService(evalRepo, attemptRepo, evalRepo, f.access)
	return f
}

func (f *fixture) evaluation(opts testutil.EvaluationOpts) model.Evaluation {
	f.t.Helper()
	return testutil.Evaluation(f.t, f.db, f.section.ID, opts)
}

// take 开始并提交一次作答
func (f *fixture) take(e model.Evaluation, caller model.Caller, answers map[uint][]uint) *ScoreResult {
	f.t.Helper()
	res, err := f.attempts.TakeEvaluation(f.ctx, e.ID, caller, answers)
	if err != nil {
		f.t.Fatalf("take evaluation: %v", err)
	}
	return res
}

// wrongAnswers 每题只选第一个错误选项
func wrongAnswers(e model.Evaluation) map[uint][]uint {
	out := make(map[uint][]uint, len(e.Questions))
	for _, q := range e.Questions {
		for _, o := range q.Options {
			if !o.IsCorrect {
				out[q.ID] = []uint{o.ID}
				break
			}
		}
	}
	return out
}
