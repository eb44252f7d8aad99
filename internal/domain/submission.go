package domain

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stayloft-lab/backend/internal/common"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type SubmissionDomain interface {
	Create(ctx context.Context, req *model.CreateSubmissionRequest) (*model.CreateSubmissionResponse, error)
	Update(ctx context.Context, req *model.UpdateSubmissionRequest) (*model.UpdateSubmissionResponse, error)
	Get(ctx context.Context, req *model.GetSubmissionRequest) (*model.GetSubmissionResponse, error)
	GetList(ctx context.Context, req *model.GetListSubmissionRequest) (*model.GetListSubmissionResponse, error)
}

type submissionDomain struct {
	submissionRepo    repository.SubmissionRepository
	voteRepo          repository.VoteRepository
	commentRepo       repository.CommentRepository
	contestPeriodRepo repository.ContestPeriodRepository
	roleVerifier      *common.GlobalRoleVerifier
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	contestPeriodRepo repository.ContestPeriodRepository,
	userRepo repository.UserRepository,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo:    submissionRepo,
		voteRepo:          voteRepo,
		commentRepo:       commentRepo,
		contestPeriodRepo: contestPeriodRepo,
		roleVerifier:      common.NewGlobalRoleVerifier(userRepo),
	}
}

func checkSubmissionContent(ctx context.Context, title, body string) error {
	if title == "" {
		return errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if body == "" {
		return errorx.New(errorx.BadRequest, "Not allow empty body")
	}

	minLength := xcontext.Configs(ctx).Contest.MinSubmissionBodyLength
	if utf8.RuneCountInString(body) < minLength {
		return errorx.New(errorx.BadRequest,
			"The article needs at least %d characters to be considered", minLength)
	}

	return nil
}

func (d *submissionDomain) Create(
	ctx context.Context, req *model.CreateSubmissionRequest,
) (*model.CreateSubmissionResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
	}

	if err := checkSubmissionContent(ctx, req.Title, req.Body); err != nil {
		return nil, err
	}

	contestPeriodID := sql.NullString{Valid: false}
	if req.ContestPeriodID != "" {
		period, err := d.contestPeriodRepo.GetByID(ctx, req.ContestPeriodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found contest period")
			}

			xcontext.Logger(ctx).Errorf("Cannot get contest period: %v", err)
			return nil, errorx.Unknown
		}

		if !period.IsActive {
			return nil, errorx.New(errorx.BadRequest,
				"The contest %s is no longer accepting submissions", period.Name)
		}

		contestPeriodID = sql.NullString{Valid: true, String: period.ID}
	}

	submission := &entity.Submission{
		Base:            entity.Base{ID: uuid.NewString()},
		AuthorID:        userID,
		ContestPeriodID: contestPeriodID,
		Title:           req.Title,
		Body:            []byte(req.Body),
		Excerpt:         req.Excerpt,
		CoverImageURL:   req.CoverImageURL,
		Status:          entity.SubmissionPending,
	}

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.submissionRepo.GetByID(ctx, submission.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created submission: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateSubmissionResponse{Submission: model.ConvertSubmission(created)}, nil
}

func (d *submissionDomain) Update(
	ctx context.Context, req *model.UpdateSubmissionRequest,
) (*model.UpdateSubmissionResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if submission.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can edit this article")
	}

	if submission.Status != entity.SubmissionPending {
		return nil, errorx.New(errorx.InvalidTransition,
			"This article can no longer be edited because it has already been reviewed")
	}

	if err := checkSubmissionContent(ctx, req.Title, req.Body); err != nil {
		return nil, err
	}

	rows, err := d.submissionRepo.UpdateContent(ctx, req.ID, repository.SubmissionContent{
		Title:         req.Title,
		Body:          []byte(req.Body),
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update submission: %v", err)
		return nil, errorx.Unknown
	}

	if rows == 0 {
		return nil, errorx.New(errorx.Conflict,
			"The article was reviewed while you were editing, reload and try again")
	}

	updated, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated submission: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateSubmissionResponse{Submission: model.ConvertSubmission(updated)}, nil
}

func (d *submissionDomain) Get(
	ctx context.Context, req *model.GetSubmissionRequest,
) (*model.GetSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty submission id")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	// Pending and rejected articles are visible to their author and the
	// moderation staff only. Everyone else cannot tell them apart from a
	// missing submission.
	if !slices.Contains(entity.VotableSubmissionStatuses, submission.Status) {
		if xcontext.RequestUserID(ctx) != submission.AuthorID {
			if err := d.roleVerifier.Verify(ctx, entity.GlobalModeratorRoles...); err != nil {
				return nil, errorx.New(errorx.NotFound, "Not found submission")
			}
		}
	}

	resp := model.ConvertSubmission(submission)

	commentCount, err := d.commentRepo.CountBySubmissionID(ctx, submission.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}
	resp.CommentCount = commentCount

	if viewerID := xcontext.RequestUserID(ctx); viewerID != "" {
		if _, err := d.voteRepo.Get(ctx, submission.ID, viewerID); err == nil {
			resp.HasVoted = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get vote of viewer: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetSubmissionResponse{Submission: resp}, nil
}

func (d *submissionDomain) GetList(
	ctx context.Context, req *model.GetListSubmissionRequest,
) (*model.GetListSubmissionResponse, error) {
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

	submissions, err := d.submissionRepo.GetList(ctx, repository.SubmissionFilter{
		Status:          entity.VotableSubmissionStatuses,
		ContestPeriodID: req.ContestPeriodID,
		Offset:          req.Offset,
		Limit:           req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	clientSubmissions := []model.Submission{}
	for i := range submissions {
		converted := model.ConvertSubmission(&submissions[i])
		converted.Body = ""
		clientSubmissions = append(clientSubmissions, converted)
	}

	return &model.GetListSubmissionResponse{Submissions: clientSubmissions}, nil
}
