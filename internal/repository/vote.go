package repository

import (
	"context"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

type VoteRepository interface {
	Create(ctx context.Context, data *entity.Vote) error
	Get(ctx context.Context, submissionID, userID string) (*entity.Vote, error)

	// Delete removes the (submission, voter) row and reports how many rows
	// were removed, so a racing retraction can be detected.
	Delete(ctx context.Context, submissionID, userID string) (int64, error)

	// Count recomputes the authoritative tally from the ledger. It exists to
	// repair or verify drift of the cached vote_count.
	Count(ctx context.Context, submissionID string) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *voteRepository) Get(ctx context.Context, submissionID, userID string) (*entity.Vote, error) {
	var result entity.Vote
	err := xcontext.DB(ctx).
		Where("submission_id=? AND user_id=?", submissionID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) Delete(ctx context.Context, submissionID, userID string) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("submission_id=? AND user_id=?", submissionID, userID).
		Delete(&entity.Vote{})
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}

func (r *voteRepository) Count(ctx context.Context, submissionID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Vote{}).
		Where("submission_id=?", submissionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
