package domain

import (
	"fmt"
	"testing"

	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func Test_voteDomain_Toggle(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	voteRepo := repository.NewVoteRepository()
	submissionRepo := repository.NewSubmissionRepository()
	voteDomain := NewVoteDomain(voteRepo, submissionRepo, leaderboard.New(nil))

	// Cannot vote without signing in.
	_, err := voteDomain.Toggle(ctx, &model.ToggleVoteRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.Error(t, err)
	require.Equal(t, "You need to sign in before voting", err.Error())

	// Cannot vote on a pending submission.
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = voteDomain.Toggle(ctxUser1, &model.ToggleVoteRequest{
		SubmissionID: testutil.Submission2.ID,
	})
	require.Error(t, err)
	require.Equal(t, "This article is not open for voting because it is pending", err.Error())

	// The first toggle casts the vote.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := voteDomain.Toggle(ctxUser2, &model.ToggleVoteRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Voted)
	require.Equal(t, int64(1), resp.VoteCount)

	hasVoted, err := voteDomain.HasVoted(ctxUser2, &model.HasVotedRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.True(t, hasVoted.Voted)

	// A second voter raises the tally to two.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	resp, err = voteDomain.Toggle(ctxUser3, &model.ToggleVoteRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.VoteCount)

	// The cached tally always agrees with the ledger.
	count, err := voteRepo.Count(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	submission, err := submissionRepo.GetByID(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, count, submission.VoteCount)

	// The second toggle of the same voter retracts the vote.
	resp, err = voteDomain.Toggle(ctxUser2, &model.ToggleVoteRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Voted)
	require.Equal(t, int64(1), resp.VoteCount)

	hasVoted, err = voteDomain.HasVoted(ctxUser2, &model.HasVotedRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.False(t, hasVoted.Voted)

	count, err = voteRepo.Count(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_voteDomain_ConcurrentToggle(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	voteRepo := repository.NewVoteRepository()
	submissionRepo := repository.NewSubmissionRepository()
	voteDomain := NewVoteDomain(voteRepo, submissionRepo, leaderboard.New(nil))

	userRepo := repository.NewUserRepository()
	voters := make([]string, 20)
	for i := range voters {
		voters[i] = fmt.Sprintf("voter%d", i)
		err := userRepo.Create(ctx, &entity.User{
			Base: entity.Base{ID: voters[i]},
			Name: voters[i],
			Role: entity.RoleUser,
		})
		require.NoError(t, err)
	}

	// Twenty voters hammer the same submission at once. The cached tally
	// must end up equal to the ledger count, no toggle may be lost.
	eg, _ := errgroup.WithContext(ctx)
	for _, voter := range voters {
		voterCtx := testutil.NewMockContextWithUserID(ctx, voter)
		eg.Go(func() error {
			_, err := voteDomain.Toggle(voterCtx, &model.ToggleVoteRequest{
				SubmissionID: testutil.Submission1.ID,
			})
			return err
		})
	}
	require.NoError(t, eg.Wait())

	count, err := voteRepo.Count(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(len(voters)), count)

	submission, err := submissionRepo.GetByID(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, count, submission.VoteCount)
}
