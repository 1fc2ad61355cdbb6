package repository

import (
	"context"
	"testing"

	"assessment_engine/internal/model"
	"assessment_engine/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	section := testutil.Course(t, db, "GO-101", true)
	testutil.Enroll(t, db, 1, "GO-101", model.EnrollmentActive, model.PaymentConfirmed)
	testutil.Enroll(t, db, 2, "GO-101", model.EnrollmentActive, model.PaymentPending)
	testutil.Enroll(t, db, 3, "GO-101", model.EnrollmentRevoked, model.PaymentConfirmed)
	testutil.Instructor(t, db, 10, "GO-101")

	info, err := repo.GetSection(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, "GO-101", info.CourseCode)
	assert.True(t, info.PaidCourse)

	tests := []struct {
		user     uint
		enrolled bool
		paid     bool
	}{
		{1, true, true},
		{2, true, false},
		{3, false, false},
		{4, false, false},
	}
	for _, tt := range tests {
		enrolled, err := repo.IsEnrolled(ctx, tt.user, "GO-101")
		require.NoError(t, err)
		assert.Equal(t, tt.enrolled, enrolled, "user %d enrolled", tt.user)

		paid, err := repo.HasPaid(ctx, tt.user, "GO-101")
		require.NoError(t, err)
		assert.Equal(t, tt.paid, paid, "user %d paid", tt.user)
	}

	ok, err := repo.IsInstructorOf(ctx, 10, "GO-101")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsInstructorOf(ctx, 1, "GO-101")
	require.NoError(t, err)
	assert.False(t, ok)
}
