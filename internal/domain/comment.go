package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Add(ctx context.Context, req *model.AddCommentRequest) (*model.AddCommentResponse, error)
	Delete(ctx context.Context, req *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
	GetList(ctx context.Context, req *model.GetListCommentRequest) (*model.GetListCommentResponse, error)
}

type commentDomain struct {
	commentRepo    repository.CommentRepository
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo:    commentRepo,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
	}
}

func (d *commentDomain) Add(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in before commenting")
	}

	if req.Body == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment")
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
		return nil, errorx.New(errorx.NotCommentable,
			"This article is not open for comments because it is %s", submission.Status)
	}

	comment := &entity.Comment{
		Base:         entity.Base{ID: uuid.NewString()},
		SubmissionID: submission.ID,
		AuthorID:     userID,
		Body:         req.Body,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(created)}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
	}

	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this comment")
	}

	if err := d.commentRepo.Delete(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}

func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetListCommentRequest,
) (*model.GetListCommentResponse, error) {
	if req.SubmissionID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty submission id")
	}

	comments, err := d.commentRepo.GetListBySubmissionID(ctx, req.SubmissionID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}

	authorName := map[string]string{}
	if len(authorIDs) > 0 {
		authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
			return nil, errorx.Unknown
		}

		for _, author := range authors {
			authorName[author.ID] = author.Name
		}
	}

	clientComments := []model.Comment{}
	for i := range comments {
		converted := model.ConvertComment(&comments[i])
		converted.AuthorName = authorName[converted.AuthorID]
		clientComments = append(clientComments, converted)
	}

	return &model.GetListCommentResponse{Comments: clientComments}, nil
}
