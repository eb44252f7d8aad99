package repository_test

import (
	"testing"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_contestPeriodRepository_ActivateAndDeactivate(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	contestPeriodRepo := repository.NewContestPeriodRepository()

	next := &entity.ContestPeriod{
		Base:      entity.Base{ID: "next_period"},
		Name:      "Next period",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, contestPeriodRepo.Create(ctx, next))

	// At most one period is active at a time.
	err := contestPeriodRepo.Activate(ctx, next.ID)
	require.Error(t, err)

	rows, err := contestPeriodRepo.Deactivate(ctx, testutil.ContestPeriod1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// Deactivating twice touches nothing.
	rows, err = contestPeriodRepo.Deactivate(ctx, testutil.ContestPeriod1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	require.NoError(t, contestPeriodRepo.Activate(ctx, next.ID))

	// Activation is a compare-and-set, an already active period refuses a
	// second activation.
	err = contestPeriodRepo.Activate(ctx, next.ID)
	require.Error(t, err)

	active, err := contestPeriodRepo.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, next.ID, active.ID)
}

func Test_contestPeriodRepository_SetWinner(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	contestPeriodRepo := repository.NewContestPeriodRepository()

	err := contestPeriodRepo.SetWinner(
		ctx, testutil.ContestPeriod1.ID, testutil.Submission1.ID, time.Now())
	require.NoError(t, err)

	// The winner is immutable once recorded.
	err = contestPeriodRepo.SetWinner(
		ctx, testutil.ContestPeriod1.ID, testutil.Submission3.ID, time.Now())
	require.Error(t, err)

	period, err := contestPeriodRepo.GetByID(ctx, testutil.ContestPeriod1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Submission1.ID, period.WinnerSubmissionID.String)
}
