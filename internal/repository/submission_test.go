package repository_test

import (
	"testing"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_submissionRepository_UpdateStatus(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	submissionRepo := repository.NewSubmissionRepository()

	// The compare-and-set succeeds once.
	rows, err := submissionRepo.UpdateStatus(
		ctx, testutil.Submission2.ID,
		entity.SubmissionPending, entity.SubmissionApproved, testutil.Moderator1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// A second transition from pending touches nothing.
	rows, err = submissionRepo.UpdateStatus(
		ctx, testutil.Submission2.ID,
		entity.SubmissionPending, entity.SubmissionRejected, testutil.Moderator1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	submission, err := submissionRepo.GetByID(ctx, testutil.Submission2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionApproved, submission.Status)
}

func Test_submissionRepository_VoteCount(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	submissionRepo := repository.NewSubmissionRepository()

	// The tally never goes below zero.
	rows, err := submissionRepo.DecreaseVoteCount(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	// A pending submission does not accept tally changes.
	rows, err = submissionRepo.IncreaseVoteCount(ctx, testutil.Submission2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	rows, err = submissionRepo.IncreaseVoteCount(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	submission, err := submissionRepo.GetByID(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), submission.VoteCount)
}

func Test_submissionRepository_GetListOrder(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	submissionRepo := repository.NewSubmissionRepository()

	// Raise the tally of the later submission, it must come first.
	rows, err := submissionRepo.IncreaseVoteCount(ctx, testutil.Submission3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	submissions, err := submissionRepo.GetList(ctx, repository.SubmissionFilter{
		Status: entity.VotableSubmissionStatuses,
	})
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	require.Equal(t, testutil.Submission3.ID, submissions[0].ID)
	require.Equal(t, testutil.Submission1.ID, submissions[1].ID)
}
