package repository

import (
	"context"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListBySubmissionID(ctx context.Context, submissionID string) ([]entity.Comment, error)
	CountBySubmissionID(ctx context.Context, submissionID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetListBySubmissionID(
	ctx context.Context, submissionID string,
) ([]entity.Comment, error) {
	result := []entity.Comment{}
	err := xcontext.DB(ctx).
		Where("submission_id=?", submissionID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountBySubmissionID(
	ctx context.Context, submissionID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("submission_id=?", submissionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id).Error
}
