package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_contestDomain_GetActive(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	contestDomain := NewContestDomain(
		repository.NewContestPeriodRepository(),
		repository.NewSubmissionRepository(),
		repository.NewUserRepository(),
		leaderboard.New(nil),
	)

	resp, err := contestDomain.GetActive(ctx, &model.GetActiveContestRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.ContestPeriod)
	require.Equal(t, testutil.ContestPeriod1.ID, resp.ContestPeriod.ID)
}

func Test_contestDomain_Resolve(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	contestPeriodRepo := repository.NewContestPeriodRepository()
	submissionRepo := repository.NewSubmissionRepository()
	voteRepo := repository.NewVoteRepository()

	contestDomain := NewContestDomain(
		contestPeriodRepo, submissionRepo,
		repository.NewUserRepository(), leaderboard.New(nil),
	)
	voteDomain := NewVoteDomain(voteRepo, submissionRepo, leaderboard.New(nil))
	commentDomain := NewCommentDomain(
		repository.NewCommentRepository(), submissionRepo, repository.NewUserRepository())

	// An active period cannot be resolved before its end time.
	ctxAdmin := testutil.NewMockContextWithUserID(ctx, testutil.Admin1.ID)
	_, err := contestDomain.Resolve(ctxAdmin, &model.ResolveContestRequest{
		ContestPeriodID: testutil.ContestPeriod1.ID,
	})
	require.Error(t, err)
	require.Equal(t,
		"The contest Best Stay Story 2026 has not reached its end time yet", err.Error())

	// Close the fixture period and set up an ended one with two tied
	// candidates, the older submission must win.
	rows, err := contestPeriodRepo.Deactivate(ctx, testutil.ContestPeriod1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	endedPeriod := &entity.ContestPeriod{
		Base:      entity.Base{ID: "ended_period"},
		Name:      "Ended Stay Story",
		StartTime: time.Now().Add(-48 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
		IsActive:  true,
	}
	require.NoError(t, contestPeriodRepo.Create(ctx, endedPeriod))

	older := &entity.Submission{
		Base:            entity.Base{ID: "older_candidate"},
		AuthorID:        testutil.User1.ID,
		ContestPeriodID: sql.NullString{Valid: true, String: endedPeriod.ID},
		Title:           "The older candidate",
		Body:            []byte("An old story that arrived first"),
		Status:          entity.SubmissionApproved,
	}
	require.NoError(t, submissionRepo.Create(ctx, older))

	newer := &entity.Submission{
		Base:            entity.Base{ID: "newer_candidate"},
		AuthorID:        testutil.User2.ID,
		ContestPeriodID: sql.NullString{Valid: true, String: endedPeriod.ID},
		Title:           "The newer candidate",
		Body:            []byte("A newer story that arrived second"),
		Status:          entity.SubmissionApproved,
	}
	require.NoError(t, submissionRepo.Create(ctx, newer))

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	for _, submissionID := range []string{older.ID, newer.ID} {
		_, err = voteDomain.Toggle(ctxUser1, &model.ToggleVoteRequest{SubmissionID: submissionID})
		require.NoError(t, err)
		_, err = voteDomain.Toggle(ctxUser2, &model.ToggleVoteRequest{SubmissionID: submissionID})
		require.NoError(t, err)
	}

	// A regular user cannot resolve.
	_, err = contestDomain.Resolve(ctxUser1, &model.ResolveContestRequest{
		ContestPeriodID: endedPeriod.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// The system context resolves; the tie breaks toward the older
	// submission.
	resp, err := contestDomain.Resolve(ctx, &model.ResolveContestRequest{
		ContestPeriodID: endedPeriod.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.ContestPeriod.IsActive)
	require.Equal(t, older.ID, resp.ContestPeriod.WinnerSubmissionID)

	winner, err := submissionRepo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionWinner, winner.Status)

	// Resolving again returns the stored result instead of failing.
	resp, err = contestDomain.Resolve(ctxAdmin, &model.ResolveContestRequest{
		ContestPeriodID: endedPeriod.ID,
	})
	require.NoError(t, err)
	require.Equal(t, older.ID, resp.ContestPeriod.WinnerSubmissionID)

	// The winner stays open for votes and comments.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	toggleResp, err := voteDomain.Toggle(ctxUser3, &model.ToggleVoteRequest{SubmissionID: older.ID})
	require.NoError(t, err)
	require.True(t, toggleResp.Voted)

	_, err = commentDomain.Add(ctxUser3, &model.AddCommentRequest{
		SubmissionID: older.ID,
		Body:         "Congratulations!",
	})
	require.NoError(t, err)

	// The resolved period shows up among past winners.
	winners, err := contestDomain.GetPastWinners(ctx, &model.GetPastWinnersRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, winners.Winners, 1)
	require.Equal(t, endedPeriod.ID, winners.Winners[0].ContestPeriod.ID)
	require.Equal(t, older.ID, winners.Winners[0].Submission.ID)
}

func Test_contestDomain_ResolveWithoutCandidate(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	contestPeriodRepo := repository.NewContestPeriodRepository()
	contestDomain := NewContestDomain(
		contestPeriodRepo,
		repository.NewSubmissionRepository(),
		repository.NewUserRepository(),
		leaderboard.New(nil),
	)

	rows, err := contestPeriodRepo.Deactivate(ctx, testutil.ContestPeriod1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	emptyPeriod := &entity.ContestPeriod{
		Base:      entity.Base{ID: "empty_period"},
		Name:      "Empty period",
		StartTime: time.Now().Add(-48 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
		IsActive:  true,
	}
	require.NoError(t, contestPeriodRepo.Create(ctx, emptyPeriod))

	// Without an approved candidate the period closes without a winner.
	resp, err := contestDomain.Resolve(ctx, &model.ResolveContestRequest{
		ContestPeriodID: emptyPeriod.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.ContestPeriod.IsActive)
	require.Empty(t, resp.ContestPeriod.WinnerSubmissionID)

	// A period closed without a winner is not a past winner.
	winners, err := contestDomain.GetPastWinners(ctx, &model.GetPastWinnersRequest{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, winners.Winners)
}
