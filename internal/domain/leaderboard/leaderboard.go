package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/stayloft-lab/backend/internal/common"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"github.com/stayloft-lab/backend/pkg/xredis"
)

// Leaderboard keeps a per-contest tally board in redis so the storefront can
// read the ranking without hitting the database. The database remains
// authoritative; the board is rebuilt from it whenever redis has no entry.
type Leaderboard interface {
	// AddCandidate puts an approved submission on the board. first reports
	// whether this is the period's only ranked candidate; only then may an
	// absent board be created, otherwise a board lost mid-contest would be
	// rebuilt with a partial candidate set and served as complete.
	AddCandidate(ctx context.Context, contestPeriodID, submissionID string, tally int64, first bool) error
	RemoveCandidate(ctx context.Context, contestPeriodID, submissionID string) error
	ChangeTally(ctx context.Context, contestPeriodID, submissionID string, delta int64) error

	// GetBoard returns submission ids ordered by tally. The second result is
	// false when the board has no data and the caller should fall back to
	// the database.
	GetBoard(ctx context.Context, contestPeriodID string, offset, limit int) ([]string, bool, error)

	// Clear drops the board of a resolved contest.
	Clear(ctx context.Context, contestPeriodID string) error
}

type redisLeaderboard struct {
	redisClient xredis.Client
}

func New(redisClient xredis.Client) *redisLeaderboard {
	return &redisLeaderboard{redisClient: redisClient}
}

func (l *redisLeaderboard) AddCandidate(
	ctx context.Context, contestPeriodID, submissionID string, tally int64, first bool,
) error {
	if l.redisClient == nil {
		return nil
	}

	key := common.RedisKeyContestTally(contestPeriodID)
	exist, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	// Never recreate a lost board from a single candidate; an absent board
	// means reads fall back to the authoritative database.
	if !exist && !first {
		return nil
	}

	return l.redisClient.ZAdd(ctx, key, redis.Z{Member: submissionID, Score: float64(tally)})
}

func (l *redisLeaderboard) RemoveCandidate(
	ctx context.Context, contestPeriodID, submissionID string,
) error {
	if l.redisClient == nil {
		return nil
	}

	return l.redisClient.ZRem(ctx, common.RedisKeyContestTally(contestPeriodID), submissionID)
}

func (l *redisLeaderboard) ChangeTally(
	ctx context.Context, contestPeriodID, submissionID string, delta int64,
) error {
	if l.redisClient == nil {
		return nil
	}

	key := common.RedisKeyContestTally(contestPeriodID)
	exist, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	// Never create a board implicitly; an absent board means reads fall
	// back to the authoritative database.
	if !exist {
		return nil
	}

	return l.redisClient.ZIncrBy(ctx, key, float64(delta), submissionID)
}

func (l *redisLeaderboard) GetBoard(
	ctx context.Context, contestPeriodID string, offset, limit int,
) ([]string, bool, error) {
	if l.redisClient == nil {
		return nil, false, nil
	}

	key := common.RedisKeyContestTally(contestPeriodID)
	zs, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		return nil, false, err
	}

	if len(zs) == 0 {
		return nil, false, nil
	}

	ids := make([]string, 0, len(zs))
	for _, z := range zs {
		if member, ok := z.Member.(string); ok {
			ids = append(ids, member)
		}
	}

	return ids, true, nil
}

func (l *redisLeaderboard) Clear(ctx context.Context, contestPeriodID string) error {
	if l.redisClient == nil {
		return nil
	}

	if err := l.redisClient.Del(ctx, common.RedisKeyContestTally(contestPeriodID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear tally board of %s: %v", contestPeriodID, err)
		return err
	}

	return nil
}
