package dto

type SubmitScoreRequest struct {
	Score int `json:"score" validate:"gte=0"`
}

type HighScoreResponse struct {
	HighScore int `json:"high_score"`
}
