package types

type AskRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required,max=2000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
