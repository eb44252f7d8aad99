package repository

import (
	"context"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionFilter struct {
	Status          []entity.SubmissionStatus
	ContestPeriodID string
	AuthorID        string
	Offset          int
	Limit           int
}

type SubmissionContent struct {
	Title         string
	Body          []byte
	Excerpt       string
	CoverImageURL string
}

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Submission, error)

	// GetList returns submissions ordered by vote tally (descending), ties
	// broken by the earliest creation time.
	GetList(ctx context.Context, filter SubmissionFilter) ([]entity.Submission, error)

	// Count returns the number of submissions matching the filter.
	Count(ctx context.Context, filter SubmissionFilter) (int64, error)

	// UpdateContent replaces the mutable fields of a pending submission. It
	// returns the number of updated rows; zero means the submission left the
	// pending status before the update was applied.
	UpdateContent(ctx context.Context, id string, content SubmissionContent) (int64, error)

	// UpdateStatus moves a submission from one status to another with a
	// compare-and-set on the current status. Zero updated rows means the
	// caller lost the race or the transition is not legal anymore.
	UpdateStatus(ctx context.Context, id string, from, to entity.SubmissionStatus, reviewerID string) (int64, error)

	// IncreaseVoteCount and DecreaseVoteCount mutate the cached tally with a
	// single statement guarded by the votable statuses. They never
	// read-modify-write.
	IncreaseVoteCount(ctx context.Context, id string) (int64, error)
	DecreaseVoteCount(ctx context.Context, id string) (int64, error)

	// SetVoteCount overwrites the cached tally with a recount of the
	// ledger. Only the reconciliation job uses it.
	SetVoteCount(ctx context.Context, id string, count int64) error
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Submission, error) {
	result := []entity.Submission{}
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) GetList(ctx context.Context, filter SubmissionFilter) ([]entity.Submission, error) {
	result := []entity.Submission{}
	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Order("vote_count DESC, created_at ASC")

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.ContestPeriodID != "" {
		tx = tx.Where("contest_period_id=?", filter.ContestPeriodID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) Count(ctx context.Context, filter SubmissionFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Submission{})

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.ContestPeriodID != "" {
		tx = tx.Where("contest_period_id=?", filter.ContestPeriodID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *submissionRepository) UpdateContent(
	ctx context.Context, id string, content SubmissionContent,
) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.SubmissionPending).
		Updates(map[string]any{
			"title":           content.Title,
			"body":            content.Body,
			"excerpt":         content.Excerpt,
			"cover_image_url": content.CoverImageURL,
		})
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}

func (r *submissionRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.SubmissionStatus, reviewerID string,
) (int64, error) {
	updates := map[string]any{
		"status":      to,
		"reviewer_id": reviewerID,
		"reviewed_at": time.Now(),
	}

	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status=?", id, from).
		Updates(updates)
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}

func (r *submissionRepository) IncreaseVoteCount(ctx context.Context, id string) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status IN (?)", id, entity.VotableSubmissionStatuses).
		Update("vote_count", gorm.Expr("vote_count+1"))
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}

func (r *submissionRepository) SetVoteCount(ctx context.Context, id string, count int64) error {
	return xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=?", id).
		Update("vote_count", count).Error
}

func (r *submissionRepository) DecreaseVoteCount(ctx context.Context, id string) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status IN (?) AND vote_count > 0", id, entity.VotableSubmissionStatuses).
		Update("vote_count", gorm.Expr("vote_count-1"))
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}
