package model

type Submission struct {
	ID              string `json:"id"`
	AuthorID        string `json:"author_id"`
	ContestPeriodID string `json:"contest_period_id,omitempty"`
	Title           string `json:"title"`
	Body            string `json:"body,omitempty"`
	Excerpt         string `json:"excerpt,omitempty"`
	CoverImageURL   string `json:"cover_image_url,omitempty"`
	Status          string `json:"status"`
	VoteCount       int64  `json:"vote_count"`
	CommentCount    int64  `json:"comment_count,omitempty"`
	HasVoted        bool   `json:"has_voted,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

type CreateSubmissionRequest struct {
	Title           string `json:"title"`
	Body            string `json:"body"`
	Excerpt         string `json:"excerpt"`
	CoverImageURL   string `json:"cover_image_url"`
	ContestPeriodID string `json:"contest_period_id"`
}

type CreateSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type UpdateSubmissionRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	Excerpt       string `json:"excerpt"`
	CoverImageURL string `json:"cover_image_url"`
}

type UpdateSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type GetSubmissionRequest struct {
	ID string `form:"id"`
}

type GetSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type GetListSubmissionRequest struct {
	ContestPeriodID string `form:"contest_period_id"`
	Offset          int    `form:"offset"`
	Limit           int    `form:"limit"`
}

type GetListSubmissionResponse struct {
	Submissions []Submission `json:"submissions"`
}

type ReviewSubmissionRequest struct {
	ID string `json:"id"`

	// Action is either "approve" or "reject".
	Action string `json:"action"`
}

type ReviewSubmissionResponse struct {
	Submission Submission `json:"submission"`
}
