package domain

import (
	"context"
	"errors"

	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type VoteDomain interface {
	Toggle(ctx context.Context, req *model.ToggleVoteRequest) (*model.ToggleVoteResponse, error)
	HasVoted(ctx context.Context, req *model.HasVotedRequest) (*model.HasVotedResponse, error)
}

type voteDomain struct {
	voteRepo       repository.VoteRepository
	submissionRepo repository.SubmissionRepository
	leaderboard    leaderboard.Leaderboard
}

func NewVoteDomain(
	voteRepo repository.VoteRepository,
	submissionRepo repository.SubmissionRepository,
	leaderboard leaderboard.Leaderboard,
) *voteDomain {
	return &voteDomain{
		voteRepo:       voteRepo,
		submissionRepo: submissionRepo,
		leaderboard:    leaderboard,
	}
}

// Toggle flips the (submission, voter) vote. The cached tally is mutated with
// a single guarded statement in the same transaction as the ledger row, so
// concurrent toggles on one submission cannot lose updates.
func (d *voteDomain) Toggle(
	ctx context.Context, req *model.ToggleVoteRequest,
) (*model.ToggleVoteResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in before voting")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if !slices.Contains(entity.VotableSubmissionStatuses, submission.Status) {
		return nil, errorx.New(errorx.NotVotable,
			"This article is not open for voting because it is %s", submission.Status)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var voted bool
	_, err = d.voteRepo.Get(ctx, req.SubmissionID, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.voteRepo.Create(ctx, &entity.Vote{
			SubmissionID: req.SubmissionID,
			UserID:       userID,
		})
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot create vote: %v", err)
			return nil, errorx.New(errorx.Conflict,
				"Your vote changed concurrently, retry with fresh state")
		}

		rows, err := d.submissionRepo.IncreaseVoteCount(ctx, req.SubmissionID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase vote count: %v", err)
			return nil, errorx.Unknown
		}

		if rows == 0 {
			return nil, errorx.New(errorx.NotVotable, "This article is no longer open for voting")
		}

		voted = true

	case err == nil:
		rows, err := d.voteRepo.Delete(ctx, req.SubmissionID, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete vote: %v", err)
			return nil, errorx.Unknown
		}

		if rows == 0 {
			return nil, errorx.New(errorx.Conflict,
				"Your vote changed concurrently, retry with fresh state")
		}

		if _, err := d.submissionRepo.DecreaseVoteCount(ctx, req.SubmissionID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease vote count: %v", err)
			return nil, errorx.Unknown
		}

		voted = false

	default:
		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	after, err := d.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission after toggle: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if after.ContestPeriodID.Valid {
		delta := int64(1)
		if !voted {
			delta = -1
		}

		err := d.leaderboard.ChangeTally(ctx, after.ContestPeriodID.String, after.ID, delta)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update tally board: %v", err)
		}
	}

	return &model.ToggleVoteResponse{Voted: voted, VoteCount: after.VoteCount}, nil
}

func (d *voteDomain) HasVoted(
	ctx context.Context, req *model.HasVotedRequest,
) (*model.HasVotedResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
	}

	_, err := d.voteRepo.Get(ctx, req.SubmissionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.HasVotedResponse{Voted: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasVotedResponse{Voted: true}, nil
}
