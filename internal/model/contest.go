package model

type ContestPeriod struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Prize              string `json:"prize,omitempty"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	IsActive           bool   `json:"is_active"`
	WinnerSubmissionID string `json:"winner_submission_id,omitempty"`
	WinnerAnnouncedAt  string `json:"winner_announced_at,omitempty"`
}

type GetActiveContestRequest struct{}

type GetActiveContestResponse struct {
	ContestPeriod *ContestPeriod `json:"contest_period,omitempty"`
}

type GetContestLeaderboardRequest struct {
	ContestPeriodID string `form:"contest_period_id"`
	Offset          int    `form:"offset"`
	Limit           int    `form:"limit"`
}

type GetContestLeaderboardResponse struct {
	Submissions []Submission `json:"submissions"`
}

type ResolveContestRequest struct {
	ContestPeriodID string `json:"contest_period_id"`
}

type ResolveContestResponse struct {
	ContestPeriod ContestPeriod `json:"contest_period"`
}

type PastWinner struct {
	ContestPeriod ContestPeriod `json:"contest_period"`
	Submission    Submission    `json:"submission"`
}

type GetPastWinnersRequest struct {
	Limit int `form:"limit"`
}

type GetPastWinnersResponse struct {
	Winners []PastWinner `json:"winners"`
}
