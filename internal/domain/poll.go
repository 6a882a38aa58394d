package domain

import "time"

// Poll represents a question with a fixed set of options. Polls are immutable
// after creation; expiration is display-only and never enforced server-side.
type Poll struct {
	ID          string
	Title       string
	Description *string
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	IsPublic    bool
}

// Option is one selectable answer belonging to exactly one poll. Position
// preserves the order the option texts were supplied at creation.
type Option struct {
	ID       string
	PollID   string
	Text     string
	Position int
}
