package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"assessment_engine/internal/model"
	"assessment_engine/internal/testutil"
	"assessment_engine/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTakeAllCorrectPasses(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, MultipleQuestions: 2})

	res := f.take(e, student, testutil.CorrectAnswers(e))
	assert.Equal(t, 100.0, res.Score)
	assert.True(t, res.Passed)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.Sequence)
}

func TestTakeHalfCorrectFails(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, MultipleQuestions: 2})

	answers := testutil.CorrectAnswers(e)
	answers[e.Questions[1].ID] = []uint{e.Questions[1].Options[0].ID}

	res := f.take(e, student, answers)
	assert.Equal(t, 50.0, res.Score)
	assert.False(t, res.Passed)
}

func TestStartRejectedWhenQuotaUsed(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, MultipleQuestions: 2, MaxAttempts: testutil.IntPtr(1)})

	f.take(e, student, wrongAnswers(e))

	_, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.Error(t, err)
	assert.Equal(t, util.KindQuotaExceeded, util.KindOf(err))

	var count int64
	f.db.Model(&model.EvaluationAttempt{}).Where("evaluation_id = ?", e.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentStartsRespectQuota(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.attempts.StartAttempt(f.ctx, e.ID, student)
		}(i)
	}
	wg.Wait()

	succeeded, exhausted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case util.KindOf(err) == util.KindQuotaExceeded:
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, exhausted)
}

func TestStartAttemptAssignsSequence(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(3)})

	for want := 1; want <= 3; want++ {
		a, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
		require.NoError(t, err)
		assert.Equal(t, want, a.Sequence)
		assert.Equal(t, f.now, a.StartedAt.UTC())
	}
}

func TestStartAttemptGates(t *testing.T) {
	f := newFixture(t)
	past := f.now.Add(-time.Minute)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1})
	closed := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, AvailableUntil: &past})

	_, err := f.attempts.StartAttempt(f.ctx, e.ID, other)
	assert.Equal(t, util.KindAuthorization, util.KindOf(err))

	_, err = f.attempts.StartAttempt(f.ctx, closed.ID, student)
	assert.True(t, errors.Is(err, util.ErrEvaluationClosed))

	_, err = f.attempts.StartAttempt(f.ctx, 404, student)
	assert.True(t, errors.Is(err, util.ErrEvaluationNotFound))
}

func TestSubmitAnswersRules(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 50, BooleanQuestions: 2})
	attempt, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)

	_, err = f.attempts.SubmitAnswers(f.ctx, attempt.ID, other, nil)
	assert.Equal(t, util.KindAuthorization, util.KindOf(err))

	_, err = f.attempts.SubmitAnswers(f.ctx, attempt.ID, student, map[uint][]uint{9999: {1}})
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	q0, q1 := e.Questions[0], e.Questions[1]
	res, err := f.attempts.SubmitAnswers(f.ctx, attempt.ID, student, map[uint][]uint{
		q0.ID: {q0.Options[0].ID},
		q1.ID: {q1.Options[0].ID, q1.Options[1].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Score)
	assert.True(t, res.Passed)

	_, err = f.attempts.SubmitAnswers(f.ctx, attempt.ID, student, testutil.CorrectAnswers(e))
	assert.True(t, errors.Is(err, util.ErrAttemptSubmitted))

	var answers []model.Answer
	require.NoError(t, f.db.Where("attempt_id = ?", attempt.ID).Order("question_id").Find(&answers).Error)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].IsCorrect)
	assert.False(t, answers[1].IsCorrect)
	assert.Len(t, answers[1].SelectedOptionIDs, 2)

	_, err = f.attempts.SubmitAnswers(f.ctx, 404, student, nil)
	assert.True(t, errors.Is(err, util.ErrAttemptNotFound))
}

func TestSubmitUnansweredQuestionsStored(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 50, MultipleQuestions: 1, BooleanQuestions: 2})

	res := f.take(e, student, map[uint][]uint{})
	assert.Equal(t, 0.0, res.Score)

	var count int64
	f.db.Model(&model.Answer{}).Where("attempt_id = ?", res.AttemptID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestEmptyEvaluationScoresZero(t *testing.T) {
	f := newFixture(t)
	strict := f.evaluation(testutil.EvaluationOpts{PassingScore: 50})
	lenient := f.evaluation(testutil.EvaluationOpts{PassingScore: 0})

	res := f.take(strict, student, nil)
	assert.Equal(t, 0.0, res.Score)
	assert.False(t, res.Passed)

	res = f.take(lenient, student, nil)
	assert.Equal(t, 0.0, res.Score)
	assert.True(t, res.Passed)
}

func TestTakeEvaluationValidatesBeforeConsumingQuota(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 50, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})

	_, err := f.attempts.TakeEvaluation(f.ctx, e.ID, student, map[uint][]uint{e.Questions[0].ID: {9999}})
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	ok, err := f.access.CanAttempt(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetEvaluationForAttemptHidesAnswers(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 50, MultipleQuestions: 1, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})

	view, err := f.attempts.GetEvaluationForAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	assert.Len(t, view.Questions[0].Options, 3)
	assert.Equal(t, model.BooleanTrueLabel, view.Questions[1].Options[0].Text)
	assert.Equal(t, 1, *view.Eligibility.RemainingAttempts)

	_, err = f.attempts.GetEvaluationForAttempt(f.ctx, e.ID, other)
	assert.Equal(t, util.KindAuthorization, util.KindOf(err))

	f.take(e, student, nil)
	_, err = f.attempts.GetEvaluationForAttempt(f.ctx, e.ID, student)
	assert.Equal(t, util.KindQuotaExceeded, util.KindOf(err))
}

func TestScoreWithinBoundsAndPassedMatches(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 66.67, MultipleQuestions: 1, BooleanQuestions: 2})
	q := e.Questions

	cases := []map[uint][]uint{
		nil,
		testutil.CorrectAnswers(e),
		wrongAnswers(e),
		{q[0].ID: q[0].CorrectOptionIDs(), q[1].ID: q[1].CorrectOptionIDs()},
		{q[0].ID: q[0].CorrectOptionIDs()},
	}
	for _, answers := range cases {
		res := f.take(e, student, answers)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 100.0)
		assert.Equal(t, res.Score >= e.PassingScore, res.Passed)
	}
}

func TestSubmitRequestSelections(t *testing.T) {
	req := SubmitRequest{Answers: []AnswerInput{
		{QuestionID: 1, SelectedOptionIDs: []uint{3}},
		{QuestionID: 2},
	}}
	sel, err := req.Selections()
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, sel[1])
	assert.Contains(t, sel, uint(2))

	req.Answers = append(req.Answers, AnswerInput{QuestionID: 1})
	_, err = req.Selections()
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestSubmitRequiresAccess(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 50, BooleanQuestions: 1})
	attempt, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_code = ?", studentID, courseCode).
		Update("status", model.EnrollmentRevoked).Error)

	allowed, err := f.access.CanAccess(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	require.False(t, allowed)

	_, err = f.attempts.SubmitAnswers(f.ctx, attempt.ID, student, testutil.CorrectAnswers(e))
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	stored, err := f.attempts.Attempts.FindByID(f.ctx, attempt.ID)
	require.NoError(t, err)
	assert.False(t, stored.Submitted())
	assert.False(t, stored.Passed)
}

// claimSlotOnInsert 在作答插入前以同一序号抢先写入一条记录，模拟并发事务先提交；
// 最多抢占 times 次，返回已抢占次数
func claimSlotOnInsert(t *testing.T, db *gorm.DB, times int) *int {
	t.Helper()
	claimed := 0
	inside := false
	err := db.Callback().Create().Before("gorm:create").Register("test:claim_slot", func(tx *gorm.DB) {
		a, ok := tx.Statement.Dest.(*model.EvaluationAttempt)
		if !ok || inside || claimed >= times {
			return
		}
		inside = true
		defer func() { inside = false }()

		rival := model.EvaluationAttempt{
			EvaluationID: a.EvaluationID,
			UserID:       a.UserID,
			Sequence:     a.Sequence,
			StartedAt:    a.StartedAt,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			tx.AddError(err)
			return
		}
		claimed++
	})
	require.NoError(t, err)
	return &claimed
}

func TestStartAttemptRetriesTakenSlot(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})
	claimed := claimSlotOnInsert(t, f.db, 1)

	a, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)
	assert.Equal(t, 1, *claimed)
	assert.Equal(t, 1, a.Sequence)

	var count int64
	f.db.Model(&model.EvaluationAttempt{}).Where("evaluation_id = ?", e.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStartAttemptGivesUpWhenSlotStaysTaken(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1})
	claimed := claimSlotOnInsert(t, f.db, maxStartRetries)

	_, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	assert.True(t, errors.Is(err, util.ErrAttemptContended))
	assert.Equal(t, util.KindInvalidState, util.KindOf(err))
	assert.Equal(t, maxStartRetries, *claimed)

	var count int64
	f.db.Model(&model.EvaluationAttempt{}).Where("evaluation_id = ?", e.ID).Count(&count)
	assert.Zero(t, count)
}

func TestStartAttemptSkipsSequenceOfDeletedAttempt(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})

	first, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&model.EvaluationAttempt{}, first.ID).Error)

	// 软删除的记录不占配额，但序号仍被唯一索引占用
	second, err := f.attempts.StartAttempt(f.ctx, e.ID, student)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Sequence)
}
