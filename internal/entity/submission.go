package entity

import (
	"database/sql"

	"github.com/stayloft-lab/backend/pkg/enum"
)

type SubmissionStatus string

var (
	SubmissionPending  = enum.New(SubmissionStatus("pending"))
	SubmissionApproved = enum.New(SubmissionStatus("approved"))
	SubmissionRejected = enum.New(SubmissionStatus("rejected"))
	SubmissionWinner   = enum.New(SubmissionStatus("winner"))
)

// VotableSubmissionStatuses are the statuses in which a submission accepts
// votes and comments.
var VotableSubmissionStatuses = []SubmissionStatus{SubmissionApproved, SubmissionWinner}

type Submission struct {
	Base

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	// A submission may exist outside any contest.
	ContestPeriodID sql.NullString
	ContestPeriod   ContestPeriod `gorm:"foreignKey:ContestPeriodID"`

	Title         string
	Body          []byte `gorm:"type:longtext"`
	Excerpt       string
	CoverImageURL string

	Status SubmissionStatus `gorm:"index"`

	// VoteCount caches the number of Vote rows referencing this submission.
	// It is mutated only by the vote repository with single-statement
	// updates.
	VoteCount int64 `gorm:"default:0"`

	ReviewerID sql.NullString
	ReviewedAt sql.NullTime
}
