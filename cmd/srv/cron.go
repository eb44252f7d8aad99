package main

import (
	"github.com/stayloft-lab/backend/internal/domain/cron"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		s.ctx,
		cron.NewResolveContestCronJob(
			s.contestDomain,
			s.contestPeriodRepo,
			xcontext.Configs(s.ctx).Contest.ResolveInterval,
		),
		cron.NewReconcileTallyCronJob(s.submissionRepo, s.voteRepo),
	)

	return nil
}
