package entity

import (
	"database/sql"
	"time"
)

type ContestPeriod struct {
	Base

	Name        string
	Description string
	Prize       string

	StartTime time.Time
	EndTime   time.Time

	// At most one period is active at any time. The flip to false at
	// resolution is a compare-and-set so concurrent resolvers cannot both
	// pick a winner.
	IsActive bool `gorm:"index"`

	// WinnerSubmissionID is immutable once set.
	WinnerSubmissionID sql.NullString
	WinnerSubmission   *Submission `gorm:"foreignKey:WinnerSubmissionID"`
	WinnerAnnouncedAt  sql.NullTime
}
