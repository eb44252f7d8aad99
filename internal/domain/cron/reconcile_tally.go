package cron

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/dateutil"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// ReconcileTallyCronJob recounts the vote ledger of every votable submission
// once a day and repairs any drift of the cached tally. The cached value is
// maintained transactionally, so a repair normally touches nothing; the job
// exists as a safety net for manual database surgery.
type ReconcileTallyCronJob struct {
	submissionRepo repository.SubmissionRepository
	voteRepo       repository.VoteRepository
}

func NewReconcileTallyCronJob(
	submissionRepo repository.SubmissionRepository,
	voteRepo repository.VoteRepository,
) *ReconcileTallyCronJob {
	return &ReconcileTallyCronJob{
		submissionRepo: submissionRepo,
		voteRepo:       voteRepo,
	}
}

func (job *ReconcileTallyCronJob) Do(ctx context.Context) {
	submissions, err := job.submissionRepo.GetList(ctx, repository.SubmissionFilter{
		Status: entity.VotableSubmissionStatuses,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get votable submissions: %v", err)
		return
	}

	var repaired int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for i := range submissions {
		submission := submissions[i]
		eg.Go(func() error {
			count, err := job.voteRepo.Count(egCtx, submission.ID)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot recount votes of %s: %v", submission.ID, err)
				return nil
			}

			if count == submission.VoteCount {
				return nil
			}

			err = job.submissionRepo.SetVoteCount(egCtx, submission.ID, count)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot repair tally of %s: %v", submission.ID, err)
				return nil
			}

			atomic.AddInt64(&repaired, 1)
			return nil
		})
	}

	eg.Wait()

	if repaired > 0 {
		xcontext.Logger(ctx).Warnf("Repaired the vote tally of %d submissions", repaired)
	}
}

func (job *ReconcileTallyCronJob) RunNow() bool {
	return false
}

func (job *ReconcileTallyCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
