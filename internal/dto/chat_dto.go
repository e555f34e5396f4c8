package dto

import "time"

// ChatRequest is a single counselling message from a user.
type ChatRequest struct {
	Message  string `json:"message" validate:"max=4000"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

// ChatResponse is the counselling reply. AIPowered is false whenever the
// reply came from the keyword fallback instead of the generative model.
type ChatResponse struct {
	Response  string    `json:"response"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
	AIPowered bool      `json:"ai_powered"`
	Error     string    `json:"error,omitempty"`
}
