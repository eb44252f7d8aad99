package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/stayloft-lab/backend/config"
	"github.com/stayloft-lab/backend/internal/domain"
	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/migration"
	"github.com/stayloft-lab/backend/pkg/logger"
	"github.com/stayloft-lab/backend/pkg/router"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"github.com/stayloft-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo          repository.UserRepository
	submissionRepo    repository.SubmissionRepository
	voteRepo          repository.VoteRepository
	contestPeriodRepo repository.ContestPeriodRepository
	commentRepo       repository.CommentRepository

	submissionDomain domain.SubmissionDomain
	moderationDomain domain.ModerationDomain
	voteDomain       domain.VoteDomain
	contestDomain    domain.ContestDomain
	commentDomain    domain.CommentDomain

	redisClient xredis.Client
	leaderboard leaderboard.Leaderboard

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	// Running without a .env file is fine, configs fall back to the process
	// environment.
	godotenv.Load()

	cfg := config.Load()

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)

	level := logger.INFO
	if cfg.Env == "local" {
		level = logger.DEBUG
	}

	// An explicit LOG_LEVEL wins over the environment default.
	if cfg.LogLevel != "" {
		level = logger.LevelFromString(cfg.LogLevel)
	}
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	dbCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(dbCfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, leaderboard falls back to database: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.contestPeriodRepo = repository.NewContestPeriodRepository()
	s.commentRepo = repository.NewCommentRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = leaderboard.New(s.redisClient)

	s.submissionDomain = domain.NewSubmissionDomain(
		s.submissionRepo, s.voteRepo, s.commentRepo, s.contestPeriodRepo, s.userRepo)
	s.moderationDomain = domain.NewModerationDomain(s.submissionRepo, s.userRepo, s.leaderboard)
	s.voteDomain = domain.NewVoteDomain(s.voteRepo, s.submissionRepo, s.leaderboard)
	s.contestDomain = domain.NewContestDomain(
		s.contestPeriodRepo, s.submissionRepo, s.userRepo, s.leaderboard)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.submissionRepo, s.userRepo)
}
