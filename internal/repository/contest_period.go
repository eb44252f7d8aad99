package repository

import (
	"context"
	"errors"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

type ContestPeriodRepository interface {
	Create(ctx context.Context, data *entity.ContestPeriod) error
	GetByID(ctx context.Context, id string) (*entity.ContestPeriod, error)

	// GetActive returns the single active period, or gorm.ErrRecordNotFound
	// when no contest is running.
	GetActive(ctx context.Context) (*entity.ContestPeriod, error)

	// Activate marks an inactive period active with a compare-and-set. At
	// most one period may be active, so activation fails while any period
	// still is.
	Activate(ctx context.Context, id string) error

	// Deactivate flips is_active from true to false with a compare-and-set.
	// Zero updated rows means another resolver already won.
	Deactivate(ctx context.Context, id string) (int64, error)

	// SetWinner records the winner of a resolved period. The winner, once
	// set, is never overwritten.
	SetWinner(ctx context.Context, id, submissionID string, announcedAt time.Time) error

	// GetResolved returns resolved periods with a winner, most recently
	// ended first.
	GetResolved(ctx context.Context, limit int) ([]entity.ContestPeriod, error)
}

type contestPeriodRepository struct{}

func NewContestPeriodRepository() *contestPeriodRepository {
	return &contestPeriodRepository{}
}

func (r *contestPeriodRepository) Create(ctx context.Context, data *entity.ContestPeriod) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *contestPeriodRepository) GetByID(ctx context.Context, id string) (*entity.ContestPeriod, error) {
	var result entity.ContestPeriod
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *contestPeriodRepository) GetActive(ctx context.Context) (*entity.ContestPeriod, error) {
	var result entity.ContestPeriod
	if err := xcontext.DB(ctx).Take(&result, "is_active=?", true).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *contestPeriodRepository) Activate(ctx context.Context, id string) error {
	// A single conditional update, so two concurrent activations cannot
	// both pass a separate existence check. The derived table keeps mysql
	// from rejecting a subquery on the table being updated.
	tx := xcontext.DB(ctx).Exec(`
		UPDATE contest_periods SET is_active=?
		WHERE id=? AND is_active=? AND deleted_at IS NULL AND NOT EXISTS (
			SELECT 1 FROM (
				SELECT id FROM contest_periods
				WHERE is_active=? AND deleted_at IS NULL
			) AS active
		)`, true, id, false, true)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("another contest period is still active")
	}

	return nil
}

func (r *contestPeriodRepository) Deactivate(ctx context.Context, id string) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.ContestPeriod{}).
		Where("id=? AND is_active=?", id, true).
		Update("is_active", false)
	if err := tx.Error; err != nil {
		return 0, err
	}

	return tx.RowsAffected, nil
}

func (r *contestPeriodRepository) SetWinner(
	ctx context.Context, id, submissionID string, announcedAt time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.ContestPeriod{}).
		Where("id=? AND winner_submission_id IS NULL", id).
		Updates(map[string]any{
			"winner_submission_id": submissionID,
			"winner_announced_at":  announcedAt,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("winner already recorded")
	}

	return nil
}

func (r *contestPeriodRepository) GetResolved(ctx context.Context, limit int) ([]entity.ContestPeriod, error) {
	result := []entity.ContestPeriod{}
	tx := xcontext.DB(ctx).
		Where("is_active=? AND winner_submission_id IS NOT NULL", false).
		Order("end_time DESC")

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
