package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RuchaTekade/polling-app/internal/domain"
)

// VotesRepository provides helpers for vote rows. The unique constraint on
// (poll_id, voter_id) is what makes the upsert safe under concurrency.
type VotesRepository struct {
	pool *pgxpool.Pool
}

// VoteUpsertParams captures the payload required to cast or change a vote.
type VoteUpsertParams struct {
	PollID   string
	OptionID string
	VoterID  string
}

// Upsert inserts a voter's first vote for a poll or overwrites the option on a
// revote, and indicates whether the row was newly created.
func (r *VotesRepository) Upsert(ctx context.Context, params VoteUpsertParams) (domain.Vote, bool, error) {
	const query = `
        INSERT INTO votes (poll_id, option_id, voter_id)
        VALUES ($1,$2,$3)
        ON CONFLICT (poll_id, voter_id)
        DO UPDATE SET option_id = EXCLUDED.option_id, updated_at = now()
        RETURNING id, poll_id, option_id, voter_id, created_at, updated_at, (xmax = 0) AS inserted
    `

	var vote domain.Vote
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.PollID, params.OptionID, params.VoterID).Scan(
		&vote.ID,
		&vote.PollID,
		&vote.OptionID,
		&vote.VoterID,
		&vote.CreatedAt,
		&vote.UpdatedAt,
		&inserted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vote{}, false, ErrNotFound
		}
		return domain.Vote{}, false, fmt.Errorf("upsert vote: %w", err)
	}

	return vote, inserted, nil
}

// ListByPoll returns all vote rows for a poll, the input the tally is derived
// from. No ordering is guaranteed.
func (r *VotesRepository) ListByPoll(ctx context.Context, pollID string) ([]domain.Vote, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, poll_id, option_id, voter_id, created_at, updated_at
        FROM votes
        WHERE poll_id = $1
    `, pollID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		var vote domain.Vote
		err := rows.Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.VoterID, &vote.CreatedAt, &vote.UpdatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return votes, nil
}

// Get retrieves the current vote for a specific poll/voter combination.
func (r *VotesRepository) Get(ctx context.Context, pollID, voterID string) (domain.Vote, error) {
	var vote domain.Vote
	err := r.pool.QueryRow(ctx, `
        SELECT id, poll_id, option_id, voter_id, created_at, updated_at
        FROM votes
        WHERE poll_id = $1 AND voter_id = $2
    `, pollID, voterID).Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.VoterID, &vote.CreatedAt, &vote.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Vote{}, ErrNotFound
		}
		return domain.Vote{}, err
	}
	return vote, nil
}

// isInvalidUUID reports whether err is Postgres complaining about malformed
// uuid input (22P02). Callers treat a malformed id like a missing row.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
