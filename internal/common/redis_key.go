package common

import "fmt"

func RedisKeyContestTally(contestPeriodID string) string {
	return fmt.Sprintf("contesttally:%s", contestPeriodID)
}
