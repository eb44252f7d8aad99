package cron

import (
	"testing"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ReconcileTallyCronJob_Do(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	submissionRepo := repository.NewSubmissionRepository()
	voteRepo := repository.NewVoteRepository()

	// Drift the cached tally away from the ledger.
	require.NoError(t, voteRepo.Create(ctx, &entity.Vote{
		SubmissionID: testutil.Submission1.ID,
		UserID:       testutil.User2.ID,
	}))
	require.NoError(t, submissionRepo.SetVoteCount(ctx, testutil.Submission1.ID, 5))

	NewReconcileTallyCronJob(submissionRepo, voteRepo).Do(ctx)

	repaired, err := submissionRepo.GetByID(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), repaired.VoteCount)
}
