package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/repository"
)

var (
	User1 = &entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
		Role: entity.RoleUser,
	}

	User2 = &entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "user2",
		Role: entity.RoleUser,
	}

	User3 = &entity.User{
		Base: entity.Base{ID: "user3"},
		Name: "user3",
		Role: entity.RoleUser,
	}

	Moderator1 = &entity.User{
		Base: entity.Base{ID: "moderator1"},
		Name: "moderator1",
		Role: entity.RoleModerator,
	}

	Admin1 = &entity.User{
		Base: entity.Base{ID: "admin1"},
		Name: "admin1",
		Role: entity.RoleAdmin,
	}

	ContestPeriod1 = &entity.ContestPeriod{
		Base:        entity.Base{ID: "contest_period1"},
		Name:        "Best Stay Story 2026",
		Description: "Write about your most memorable stay.",
		Prize:       "A free week in any loft",
		StartTime:   time.Now().Add(-24 * time.Hour),
		EndTime:     time.Now().Add(24 * time.Hour),
		IsActive:    true,
	}

	Submission1 = &entity.Submission{
		Base:            entity.Base{ID: "submission1"},
		AuthorID:        User1.ID,
		ContestPeriodID: sql.NullString{Valid: true, String: ContestPeriod1.ID},
		Title:           "A week above the bakery",
		Body:            []byte("The loft above the bakery smelled of bread every morning."),
		Status:          entity.SubmissionApproved,
	}

	Submission2 = &entity.Submission{
		Base:            entity.Base{ID: "submission2"},
		AuthorID:        User2.ID,
		ContestPeriodID: sql.NullString{Valid: true, String: ContestPeriod1.ID},
		Title:           "Ten nights by the harbor",
		Body:            []byte("Every evening the gulls argued about who owned the railing."),
		Status:          entity.SubmissionPending,
	}

	Submission3 = &entity.Submission{
		Base:     entity.Base{ID: "submission3"},
		AuthorID: User2.ID,
		Title:    "Notes from nowhere in particular",
		Body:     []byte("Not every stay needs a contest to be worth writing about."),
		Status:   entity.SubmissionApproved,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertContestPeriods(ctx)
	InsertSubmissions(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []*entity.User{User1, User2, User3, Moderator1, Admin1} {
		if err := userRepo.Create(ctx, user); err != nil {
			panic(err)
		}
	}
}

func InsertContestPeriods(ctx context.Context) {
	contestPeriodRepo := repository.NewContestPeriodRepository()

	if err := contestPeriodRepo.Create(ctx, ContestPeriod1); err != nil {
		panic(err)
	}
}

func InsertSubmissions(ctx context.Context) {
	submissionRepo := repository.NewSubmissionRepository()

	for _, submission := range []*entity.Submission{Submission1, Submission2, Submission3} {
		if err := submissionRepo.Create(ctx, submission); err != nil {
			panic(err)
		}
	}
}
