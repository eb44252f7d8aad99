package model

type Comment struct {
	ID           string `json:"id"`
	SubmissionID string `json:"submission_id"`
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name,omitempty"`
	Body         string `json:"body"`
	CreatedAt    string `json:"created_at"`
}

type AddCommentRequest struct {
	SubmissionID string `json:"submission_id"`
	Body         string `json:"body"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct{}

type GetListCommentRequest struct {
	SubmissionID string `form:"submission_id"`
}

type GetListCommentResponse struct {
	Comments []Comment `json:"comments"`
}
