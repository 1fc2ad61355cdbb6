package repository

import (
	"context"
	"testing"
	"time"

	"assessment_engine/internal/model"
	"assessment_engine/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIsConditionalOnPending(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReopenRepository(db)
	ctx := context.Background()

	req := model.EvaluationReopenRequest{EvaluationID: 1, UserID: 7, Justification: "sick", Status: model.ReopenPending}
	require.NoError(t, repo.Create(ctx, &req))

	pending, err := repo.HasPending(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, pending)

	ok, err := repo.Resolve(ctx, req.ID, model.ReopenApproved, 99, "ok", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Resolve(ctx, req.ID, model.ReopenRejected, 99, "late", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReopenApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, uint(99), *got.ReviewedBy)
	assert.Equal(t, "ok", got.ReviewNote)

	pending, err = repo.HasPending(ctx, 1, 7)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestListByEvaluationFiltersStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReopenRepository(db)
	ctx := context.Background()

	for _, s := range []model.ReopenStatus{model.ReopenPending, model.ReopenRejected, model.ReopenPending} {
		require.NoError(t, repo.Create(ctx, &model.EvaluationReopenRequest{EvaluationID: 1, UserID: 7, Justification: "x", Status: s}))
	}
	require.NoError(t, repo.Create(ctx, &model.EvaluationReopenRequest{EvaluationID: 2, UserID: 7, Justification: "x", Status: model.ReopenPending}))

	all, err := repo.ListByEvaluation(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := repo.ListByEvaluation(ctx, 1, model.ReopenPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	mine, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}
