package domain

import "time"

// Vote is a voter's current choice of option for a poll. At most one row
// exists per (poll, voter); revotes overwrite the option in place.
type Vote struct {
	ID        string
	PollID    string
	OptionID  string
	VoterID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OptionCount pairs an option with its derived vote count.
type OptionCount struct {
	OptionID string
	Count    int64
}

// Tally is the derived per-option breakdown for a poll. Never persisted;
// recomputed from the vote rows on every read.
type Tally struct {
	Counts []OptionCount
	Total  int64
}
