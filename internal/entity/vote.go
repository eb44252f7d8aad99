package entity

import "time"

// Vote is one user's endorsement of one submission. The composite primary
// key enforces at most one row per (submission, voter) pair.
type Vote struct {
	SubmissionID string     `gorm:"primaryKey"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
