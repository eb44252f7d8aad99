package model

import (
	"strings"
	"time"

	"github.com/stayloft-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

const excerptRuneLimit = 200

func ConvertSubmission(submission *entity.Submission) Submission {
	if submission == nil {
		return Submission{}
	}

	excerpt := submission.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(string(submission.Body))
	}

	return Submission{
		ID:              submission.ID,
		AuthorID:        submission.AuthorID,
		ContestPeriodID: submission.ContestPeriodID.String,
		Title:           submission.Title,
		Body:            string(submission.Body),
		Excerpt:         excerpt,
		CoverImageURL:   submission.CoverImageURL,
		Status:          string(submission.Status),
		VoteCount:       submission.VoteCount,
		CreatedAt:       submission.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:       submission.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertContestPeriod(period *entity.ContestPeriod) ContestPeriod {
	if period == nil {
		return ContestPeriod{}
	}

	result := ContestPeriod{
		ID:                 period.ID,
		Name:               period.Name,
		Description:        period.Description,
		Prize:              period.Prize,
		StartTime:          period.StartTime.Format(DefaultTimeLayout),
		EndTime:            period.EndTime.Format(DefaultTimeLayout),
		IsActive:           period.IsActive,
		WinnerSubmissionID: period.WinnerSubmissionID.String,
	}

	if period.WinnerAnnouncedAt.Valid {
		result.WinnerAnnouncedAt = period.WinnerAnnouncedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:           comment.ID,
		SubmissionID: comment.SubmissionID,
		AuthorID:     comment.AuthorID,
		Body:         comment.Body,
		CreatedAt:    comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func deriveExcerpt(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= excerptRuneLimit {
		return body
	}

	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "…"
}
