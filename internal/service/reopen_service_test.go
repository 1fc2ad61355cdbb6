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
)

// exhausted 创建仅允许一次作答的评测，并让学生用掉这一次且未通过
func exhausted(f *fixture) model.Evaluation {
	f.t.Helper()
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, MultipleQuestions: 2, MaxAttempts: testutil.IntPtr(1)})
	f.take(e, student, wrongAnswers(e))
	return e
}

func TestPassedStudentCannotReopen(t *testing.T) {
	f := newFixture(t)
	e := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, MultipleQuestions: 2, MaxAttempts: testutil.IntPtr(1)})
	f.take(e, student, testutil.CorrectAnswers(e))

	_, err := f.reopens.RequestReopen(f.ctx, e.ID, student, "I want a better grade")
	assert.True(t, errors.Is(err, util.ErrAlreadyPassed))
}

func TestApprovalGrantsExactlyOneAttempt(t *testing.T) {
	f := newFixture(t)
	e := exhausted(f)

	ok, err := f.access.CanAttempt(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	assert.False(t, ok)

	req, err := f.reopens.RequestReopen(f.ctx, e.ID, student, "  power outage  ")
	require.NoError(t, err)
	assert.Equal(t, model.ReopenPending, req.Status)
	assert.Equal(t, "power outage", req.Justification)

	approved, err := f.reopens.Approve(f.ctx, req.ID, instructor, "ok")
	require.NoError(t, err)
	assert.Equal(t, model.ReopenApproved, approved.Status)
	assert.Equal(t, instructorID, *approved.ReviewedBy)
	assert.Equal(t, f.now, *approved.ReviewedAt)

	ok, err = f.access.CanAttempt(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	assert.True(t, ok)

	res := f.take(e, student, wrongAnswers(e))
	assert.Equal(t, 2, res.Sequence)

	ok, err = f.access.CanAttempt(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.attempts.StartAttempt(f.ctx, e.ID, student)
	assert.Equal(t, util.KindQuotaExceeded, util.KindOf(err))
}

func TestRequestReopenPreconditions(t *testing.T) {
	f := newFixture(t)
	past := f.now.Add(-time.Hour)
	fresh := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1)})
	closed := f.evaluation(testutil.EvaluationOpts{PassingScore: 70, BooleanQuestions: 1, MaxAttempts: testutil.IntPtr(1), AvailableUntil: &past})
	used := exhausted(f)

	tests := []struct {
		name          string
		evaluationID  uint
		caller        model.Caller
		justification string
		want          error
		wantKind      util.ErrorKind
	}{
		{"blank justification", used.ID, student, "   ", nil, util.KindValidation},
		{"attempts remaining", fresh.ID, student, "please", util.ErrAttemptsRemaining, 0},
		{"closed", closed.ID, student, "please", util.ErrEvaluationClosed, 0},
		{"no access", used.ID, other, "please", util.ErrPermissionDenied, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reopens.RequestReopen(f.ctx, tt.evaluationID, tt.caller, tt.justification)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			} else {
				assert.Equal(t, tt.wantKind, util.KindOf(err))
			}
		})
	}

	_, err := f.reopens.RequestReopen(f.ctx, used.ID, student, "first")
	require.NoError(t, err)
	_, err = f.reopens.RequestReopen(f.ctx, used.ID, student, "second")
	assert.True(t, errors.Is(err, util.ErrReopenAlreadyPending))
}

func TestConcurrentReopenRequestsCreateOnePending(t *testing.T) {
	f := newFixture(t)
	e := exhausted(f)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.reopens.RequestReopen(f.ctx, e.ID, student, "retry")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, util.ErrReopenAlreadyPending), "got %v", err)
	}
	assert.Equal(t, 1, created)
}

func TestRejectLeavesQuotaUnchanged(t *testing.T) {
	f := newFixture(t)
	e := exhausted(f)
	req, err := f.reopens.RequestReopen(f.ctx, e.ID, student, "please")
	require.NoError(t, err)

	rejected, err := f.reopens.Reject(f.ctx, req.ID, admin, "no")
	require.NoError(t, err)
	assert.Equal(t, model.ReopenRejected, rejected.Status)
	assert.Equal(t, "no", rejected.ReviewNote)

	ok, err := f.access.CanAttempt(f.ctx, e.ID, studentID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.reopens.Approve(f.ctx, req.ID, instructor, "changed my mind")
	assert.True(t, errors.Is(err, util.ErrReopenAlreadyResolved))

	// 被拒绝后可以再次申请
	_, err = f.reopens.RequestReopen(f.ctx, e.ID, student, "again")
	assert.NoError(t, err)
}

func TestReviewRequiresInstructor(t *testing.T) {
	f := newFixture(t)
	e := exhausted(f)
	req, err := f.reopens.RequestReopen(f.ctx, e.ID, student, "please")
	require.NoError(t, err)

	_, err = f.reopens.Approve(f.ctx, req.ID, student, "self approve")
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	outsider := model.Caller{UserID: 55, Role: model.Teacher}
	_, err = f.reopens.Reject(f.ctx, req.ID, outsider, "")
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	_, err = f.reopens.Approve(f.ctx, 404, instructor, "")
	assert.True(t, errors.Is(err, util.ErrReopenNotFound))
}

func TestListRequests(t *testing.T) {
	f := newFixture(t)
	e := exhausted(f)
	req, err := f.reopens.RequestReopen(f.ctx, e.ID, student, "please")
	require.NoError(t, err)
	_, err = f.reopens.Reject(f.ctx, req.ID, instructor, "")
	require.NoError(t, err)
	_, err = f.reopens.RequestReopen(f.ctx, e.ID, student, "please again")
	require.NoError(t, err)

	all, err := f.reopens.ListRequests(f.ctx, e.ID, instructor, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.reopens.ListRequests(f.ctx, e.ID, instructor, model.ReopenPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "please again", pending[0].Justification)

	_, err = f.reopens.ListRequests(f.ctx, e.ID, instructor, "archived")
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.reopens.ListRequests(f.ctx, e.ID, student, "")
	assert.Equal(t, util.KindAuthorization, util.KindOf(err))

	mine, err := f.reopens.ListMyRequests(f.ctx, student)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
