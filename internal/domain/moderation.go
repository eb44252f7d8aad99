package domain

import (
	"context"
	"errors"

	"github.com/stayloft-lab/backend/internal/common"
	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ModerationDomain is the only path moving a submission out of pending.
type ModerationDomain interface {
	Review(ctx context.Context, req *model.ReviewSubmissionRequest) (*model.ReviewSubmissionResponse, error)
}

type moderationDomain struct {
	submissionRepo repository.SubmissionRepository
	leaderboard    leaderboard.Leaderboard
	roleVerifier   *common.GlobalRoleVerifier
}

func NewModerationDomain(
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	leaderboard leaderboard.Leaderboard,
) *moderationDomain {
	return &moderationDomain{
		submissionRepo: submissionRepo,
		leaderboard:    leaderboard,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *moderationDomain) Review(
	ctx context.Context, req *model.ReviewSubmissionRequest,
) (*model.ReviewSubmissionResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalModeratorRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	var newStatus entity.SubmissionStatus
	switch req.Action {
	case "approve":
		newStatus = entity.SubmissionApproved
	case "reject":
		newStatus = entity.SubmissionRejected
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if submission.Status != entity.SubmissionPending {
		return nil, errorx.New(errorx.InvalidTransition,
			"This article has already been reviewed as %s", submission.Status)
	}

	rows, err := d.submissionRepo.UpdateStatus(
		ctx, req.ID, entity.SubmissionPending, newStatus, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update submission status: %v", err)
		return nil, errorx.Unknown
	}

	if rows == 0 {
		return nil, errorx.New(errorx.Conflict,
			"Another review finished first, reload and try again")
	}

	if newStatus == entity.SubmissionApproved && submission.ContestPeriodID.Valid {
		ranked, err := d.submissionRepo.Count(ctx, repository.SubmissionFilter{
			Status:          entity.VotableSubmissionStatuses,
			ContestPeriodID: submission.ContestPeriodID.String,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count ranked candidates: %v", err)
		} else {
			err := d.leaderboard.AddCandidate(
				ctx, submission.ContestPeriodID.String, submission.ID, 0, ranked == 1)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot add candidate to tally board: %v", err)
			}
		}
	}

	reviewed, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reviewed submission: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewSubmissionResponse{Submission: model.ConvertSubmission(reviewed)}, nil
}
