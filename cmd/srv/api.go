package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/stayloft-lab/backend/internal/middleware"
	"github.com/stayloft-lab/backend/pkg/logger"
	"github.com/stayloft-lab/backend/pkg/router"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(xcontext.DB(s.ctx), cfg, logger.NewLogger(logger.INFO))
	s.router.AddCloser(middleware.Logger())

	// Public API.
	router.GET(s.router, "/getActiveContest", s.contestDomain.GetActive)
	router.GET(s.router, "/getContestLeaderboard", s.contestDomain.GetLeaderboard)
	router.GET(s.router, "/getPastWinners", s.contestDomain.GetPastWinners)
	router.GET(s.router, "/getListSubmission", s.submissionDomain.GetList)
	router.GET(s.router, "/getListComment", s.commentDomain.GetList)

	// The submission detail includes whether the viewer has voted, so the
	// access token is read when present but never required.
	optionalAuthRouter := s.router.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().WithOptional().Middleware())
	{
		router.GET(optionalAuthRouter, "/getSubmission", s.submissionDomain.Get)
	}

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// Submission API
		router.POST(authRouter, "/createSubmission", s.submissionDomain.Create)
		router.POST(authRouter, "/updateSubmission", s.submissionDomain.Update)

		// Vote API
		router.POST(authRouter, "/toggleVote", s.voteDomain.Toggle)
		router.GET(authRouter, "/hasVoted", s.voteDomain.HasVoted)

		// Comment API
		router.POST(authRouter, "/addComment", s.commentDomain.Add)
		router.POST(authRouter, "/deleteComment", s.commentDomain.Delete)

		// Moderation API, the domain checks the moderator role.
		router.POST(authRouter, "/reviewSubmission", s.moderationDomain.Review)

		// Admin API, the domain checks the admin role.
		router.POST(authRouter, "/resolveContest", s.contestDomain.Resolve)
	}
}
