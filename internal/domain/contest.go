package domain

import (
	"context"
	"errors"
	"time"

	"github.com/stayloft-lab/backend/internal/common"
	"github.com/stayloft-lab/backend/internal/domain/leaderboard"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ContestDomain interface {
	GetActive(ctx context.Context, req *model.GetActiveContestRequest) (*model.GetActiveContestResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetContestLeaderboardRequest) (*model.GetContestLeaderboardResponse, error)
	Resolve(ctx context.Context, req *model.ResolveContestRequest) (*model.ResolveContestResponse, error)
	GetPastWinners(ctx context.Context, req *model.GetPastWinnersRequest) (*model.GetPastWinnersResponse, error)
}

type contestDomain struct {
	contestPeriodRepo repository.ContestPeriodRepository
	submissionRepo    repository.SubmissionRepository
	leaderboard       leaderboard.Leaderboard
	roleVerifier      *common.GlobalRoleVerifier
}

func NewContestDomain(
	contestPeriodRepo repository.ContestPeriodRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	leaderboard leaderboard.Leaderboard,
) *contestDomain {
	return &contestDomain{
		contestPeriodRepo: contestPeriodRepo,
		submissionRepo:    submissionRepo,
		leaderboard:       leaderboard,
		roleVerifier:      common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *contestDomain) GetActive(
	ctx context.Context, req *model.GetActiveContestRequest,
) (*model.GetActiveContestResponse, error) {
	period, err := d.contestPeriodRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetActiveContestResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get active contest period: %v", err)
		return nil, errorx.Unknown
	}

	converted := model.ConvertContestPeriod(period)
	return &model.GetActiveContestResponse{ContestPeriod: &converted}, nil
}

func (d *contestDomain) GetLeaderboard(
	ctx context.Context, req *model.GetContestLeaderboardRequest,
) (*model.GetContestLeaderboardResponse, error) {
	if req.ContestPeriodID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty contest period id")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	ids, ok, err := d.leaderboard.GetBoard(ctx, req.ContestPeriodID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read tally board: %v", err)
	}

	var submissions []entity.Submission
	if ok {
		unordered, err := d.submissionRepo.GetByIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get submissions of tally board: %v", err)
			return nil, errorx.Unknown
		}

		byID := map[string]entity.Submission{}
		for _, s := range unordered {
			byID[s.ID] = s
		}

		for _, id := range ids {
			if s, exists := byID[id]; exists {
				submissions = append(submissions, s)
			}
		}
	} else {
		submissions, err = d.submissionRepo.GetList(ctx, repository.SubmissionFilter{
			Status:          entity.VotableSubmissionStatuses,
			ContestPeriodID: req.ContestPeriodID,
			Offset:          req.Offset,
			Limit:           req.Limit,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
			return nil, errorx.Unknown
		}
	}

	clientSubmissions := []model.Submission{}
	for i := range submissions {
		converted := model.ConvertSubmission(&submissions[i])
		converted.Body = ""
		clientSubmissions = append(clientSubmissions, converted)
	}

	return &model.GetContestLeaderboardResponse{Submissions: clientSubmissions}, nil
}

// Resolve ends an active contest period whose end time has passed and
// declares at most one winner. It is idempotent; resolving an already
// resolved period returns the stored result.
func (d *contestDomain) Resolve(
	ctx context.Context, req *model.ResolveContestRequest,
) (*model.ResolveContestResponse, error) {
	// The cron scheduler calls this domain directly with a system context.
	// Requests arriving with a user identity need the admin role.
	if xcontext.RequestUserID(ctx) != "" {
		if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	period, err := d.contestPeriodRepo.GetByID(ctx, req.ContestPeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found contest period")
		}

		xcontext.Logger(ctx).Errorf("Cannot get contest period: %v", err)
		return nil, errorx.Unknown
	}

	if !period.IsActive {
		converted := model.ConvertContestPeriod(period)
		return &model.ResolveContestResponse{ContestPeriod: converted}, nil
	}

	if time.Now().Before(period.EndTime) {
		return nil, errorx.New(errorx.BadRequest,
			"The contest %s has not reached its end time yet", period.Name)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Only one resolver may pass this compare-and-set; every other caller
	// observes an inactive period and returns the stored result.
	rows, err := d.contestPeriodRepo.Deactivate(ctx, period.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate contest period: %v", err)
		return nil, errorx.Unknown
	}

	if rows == 0 {
		xcontext.WithRollbackDBTransaction(ctx)
		resolved, err := d.contestPeriodRepo.GetByID(ctx, period.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get resolved contest period: %v", err)
			return nil, errorx.Unknown
		}

		converted := model.ConvertContestPeriod(resolved)
		return &model.ResolveContestResponse{ContestPeriod: converted}, nil
	}

	candidates, err := d.submissionRepo.GetList(ctx, repository.SubmissionFilter{
		Status:          []entity.SubmissionStatus{entity.SubmissionApproved},
		ContestPeriodID: period.ID,
		Limit:           1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get candidates: %v", err)
		return nil, errorx.Unknown
	}

	// No approved candidate: the period closes without a winner.
	if len(candidates) > 0 {
		winner := candidates[0]
		rows, err := d.submissionRepo.UpdateStatus(
			ctx, winner.ID, entity.SubmissionApproved, entity.SubmissionWinner, "system")
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot promote winner: %v", err)
			return nil, errorx.Unknown
		}

		if rows == 0 {
			return nil, errorx.New(errorx.Conflict,
				"The winning article changed concurrently, retry")
		}

		err = d.contestPeriodRepo.SetWinner(ctx, period.ID, winner.ID, time.Now())
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set winner: %v", err)
			return nil, errorx.Unknown
		}
	}

	resolved, err := d.contestPeriodRepo.GetByID(ctx, period.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get resolved contest period: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.leaderboard.Clear(ctx, period.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear tally board of %s: %v", period.ID, err)
	}

	converted := model.ConvertContestPeriod(resolved)
	return &model.ResolveContestResponse{ContestPeriod: converted}, nil
}

func (d *contestDomain) GetPastWinners(
	ctx context.Context, req *model.GetPastWinnersRequest,
) (*model.GetPastWinnersResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	periods, err := d.contestPeriodRepo.GetResolved(ctx, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get resolved contest periods: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, p := range periods {
		if p.WinnerSubmissionID.Valid {
			ids = append(ids, p.WinnerSubmissionID.String)
		}
	}

	submissions, err := d.submissionRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winner submissions: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]entity.Submission{}
	for _, s := range submissions {
		byID[s.ID] = s
	}

	winners := []model.PastWinner{}
	for i := range periods {
		winner, exists := byID[periods[i].WinnerSubmissionID.String]
		if !exists {
			continue
		}

		converted := model.ConvertSubmission(&winner)
		converted.Body = ""
		winners = append(winners, model.PastWinner{
			ContestPeriod: model.ConvertContestPeriod(&periods[i]),
			Submission:    converted,
		})
	}

	return &model.GetPastWinnersResponse{Winners: winners}, nil
}
