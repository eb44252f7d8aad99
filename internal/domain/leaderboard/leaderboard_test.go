package leaderboard

import (
	"context"
	"sort"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_redisLeaderboard_ChangeTally(t *testing.T) {
	ctx := context.Background()

	incremented := false
	mock := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr float64, member string) error {
			incremented = true
			return nil
		},
	}

	// An absent board is never created implicitly.
	lb := New(mock)
	require.NoError(t, lb.ChangeTally(ctx, "period1", "submission1", 1))
	require.False(t, incremented)

	mock.ExistFunc = func(ctx context.Context, key string) (bool, error) {
		return true, nil
	}
	require.NoError(t, lb.ChangeTally(ctx, "period1", "submission1", 1))
	require.True(t, incremented)
}

func Test_redisLeaderboard_AddCandidate(t *testing.T) {
	ctx := context.Background()

	board := map[string]float64{}
	mock := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return len(board) > 0, nil
		},
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			board[z.Member.(string)] = z.Score
			return nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr float64, member string) error {
			board[member] += incr
			return nil
		},
		ZRevRangeWithScoresFunc: func(
			ctx context.Context, key string, offset, limit int,
		) ([]redis.Z, error) {
			zs := []redis.Z{}
			for member, score := range board {
				zs = append(zs, redis.Z{Member: member, Score: score})
			}
			sort.Slice(zs, func(i, j int) bool { return zs[i].Score > zs[j].Score })
			return zs, nil
		},
	}

	lb := New(mock)

	// The first approval of a period creates the board, later approvals
	// join it.
	require.NoError(t, lb.AddCandidate(ctx, "period1", "submission1", 0, true))
	require.NoError(t, lb.AddCandidate(ctx, "period1", "submission2", 0, false))
	for i := 0; i < 5; i++ {
		require.NoError(t, lb.ChangeTally(ctx, "period1", "submission1", 1))
	}

	ids, ok, err := lb.GetBoard(ctx, "period1", 0, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"submission1", "submission2"}, ids)

	// Redis lost the board. A later approval must not rebuild it with only
	// itself, reads keep falling back to the database until the contest
	// starts over.
	for member := range board {
		delete(board, member)
	}

	require.NoError(t, lb.AddCandidate(ctx, "period1", "submission3", 0, false))

	_, ok, err = lb.GetBoard(ctx, "period1", 0, 10)
	require.NoError(t, err)
	require.False(t, ok)
}

func Test_redisLeaderboard_GetBoard(t *testing.T) {
	ctx := context.Background()

	mock := &testutil.MockRedisClient{}
	lb := New(mock)

	// An empty board sends the caller to the database.
	_, ok, err := lb.GetBoard(ctx, "period1", 0, 10)
	require.NoError(t, err)
	require.False(t, ok)

	mock.ZRevRangeWithScoresFunc = func(
		ctx context.Context, key string, offset, limit int,
	) ([]redis.Z, error) {
		return []redis.Z{
			{Member: "submission2", Score: 3},
			{Member: "submission1", Score: 1},
		}, nil
	}

	ids, ok, err := lb.GetBoard(ctx, "period1", 0, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"submission2", "submission1"}, ids)
}

func Test_redisLeaderboard_NoClient(t *testing.T) {
	ctx := context.Background()

	// Without redis every mutation is a no-op and reads fall back.
	lb := New(nil)
	require.NoError(t, lb.AddCandidate(ctx, "period1", "submission1", 0, true))
	require.NoError(t, lb.ChangeTally(ctx, "period1", "submission1", 1))

	_, ok, err := lb.GetBoard(ctx, "period1", 0, 10)
	require.NoError(t, err)
	require.False(t, ok)
}
