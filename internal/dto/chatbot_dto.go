package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type SendChatResponse struct {
	Response  string `json:"response"`
	SessionId string `json:"session_id"`
}

type ChatTurnResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	Id        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	CreatedAt time.Time          `json:"created_at"`
	Turns     []ChatTurnResponse `json:"turns"`
}

type SessionSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	TurnCount int       `json:"turn_count"`
}
