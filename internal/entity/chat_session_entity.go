package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is an ordered conversation transcript. Turns are append-only:
// they are never edited, removed, or reordered individually.
type ChatSession struct {
	Id        uuid.UUID
	Title     string
	CreatedAt time.Time
	Turns     []ChatTurn
}

// ChatTurn is one message within a session.
type ChatTurn struct {
	Id        uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// ChatSessionSummary is the listing view of a session.
type ChatSessionSummary struct {
	Id        uuid.UUID
	Title     string
	CreatedAt time.Time
	TurnCount int
}
