package cron

import (
	"context"
	"errors"
	"time"

	"github.com/stayloft-lab/backend/internal/domain"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ResolveContestCronJob struct {
	contestDomain     domain.ContestDomain
	contestPeriodRepo repository.ContestPeriodRepository
	interval          time.Duration
}

func NewResolveContestCronJob(
	contestDomain domain.ContestDomain,
	contestPeriodRepo repository.ContestPeriodRepository,
	interval time.Duration,
) *ResolveContestCronJob {
	if interval <= 0 {
		interval = time.Minute
	}

	return &ResolveContestCronJob{
		contestDomain:     contestDomain,
		contestPeriodRepo: contestPeriodRepo,
		interval:          interval,
	}
}

func (job *ResolveContestCronJob) Do(ctx context.Context) {
	period, err := job.contestPeriodRepo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get active contest period: %v", err)
		}
		return
	}

	if time.Now().Before(period.EndTime) {
		return
	}

	resp, err := job.contestDomain.Resolve(ctx, &model.ResolveContestRequest{
		ContestPeriodID: period.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve contest period %s: %v", period.ID, err)
		return
	}

	if resp.ContestPeriod.WinnerSubmissionID != "" {
		xcontext.Logger(ctx).Infof("Contest period %s resolved, winner is %s",
			period.ID, resp.ContestPeriod.WinnerSubmissionID)
	} else {
		xcontext.Logger(ctx).Infof("Contest period %s closed without a winner", period.ID)
	}
}

func (job *ResolveContestCronJob) RunNow() bool {
	return true
}

func (job *ResolveContestCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
