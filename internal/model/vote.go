package model

type ToggleVoteRequest struct {
	SubmissionID string `json:"submission_id"`
}

// ToggleVoteResponse returns the resulting state so a caller retrying after
// an ambiguous failure can detect an unintended double flip.
type ToggleVoteResponse struct {
	Voted     bool  `json:"voted"`
	VoteCount int64 `json:"vote_count"`
}

type HasVotedRequest struct {
	SubmissionID string `form:"submission_id"`
}

type HasVotedResponse struct {
	Voted bool `json:"voted"`
}
