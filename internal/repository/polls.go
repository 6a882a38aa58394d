package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RuchaTekade/polling-app/internal/domain"
)

// PollsRepository provides persistence helpers for polls and their options.
type PollsRepository struct {
	pool *pgxpool.Pool
}

const pollColumns = `
    id,
    title,
    description,
    created_at,
    expires_at,
    is_public
`

// PollCreateParams bundles the fields required to create a poll. OptionTexts
// must already be trimmed and non-empty; order is preserved.
type PollCreateParams struct {
	Title       string
	Description *string
	OptionTexts []string
	ExpiresAt   *time.Time
	IsPublic    bool
}

// Create inserts a poll and its options as one transaction and returns the
// stored poll with options in supplied order. Errors are prefixed with the
// failing stage so callers can tell a poll insert from an options insert.
func (r *PollsRepository) Create(ctx context.Context, params PollCreateParams) (domain.Poll, []domain.Option, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Poll{}, nil, fmt.Errorf("begin create poll: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO polls (title, description, expires_at, is_public)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, pollColumns)

	poll, err := scanPoll(tx.QueryRow(ctx, query, params.Title, params.Description, params.ExpiresAt, params.IsPublic))
	if err != nil {
		return domain.Poll{}, nil, fmt.Errorf("insert poll: %w", err)
	}

	options := make([]domain.Option, 0, len(params.OptionTexts))
	for pos, text := range params.OptionTexts {
		var opt domain.Option
		err := tx.QueryRow(ctx, `
            INSERT INTO poll_options (poll_id, option_text, position)
            VALUES ($1,$2,$3)
            RETURNING id, poll_id, option_text, position
        `, poll.ID, text, pos).Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position)
		if err != nil {
			return domain.Poll{}, nil, fmt.Errorf("insert options: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Poll{}, nil, fmt.Errorf("commit create poll: %w", err)
	}
	return poll, options, nil
}

// GetByID fetches a poll by its identifier.
func (r *PollsRepository) GetByID(ctx context.Context, id string) (domain.Poll, error) {
	query := fmt.Sprintf(`SELECT %s FROM polls WHERE id = $1`, pollColumns)
	poll, err := scanPoll(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Poll{}, ErrNotFound
		}
		return domain.Poll{}, err
	}
	return poll, nil
}

// List returns polls newest first. When publicOnly is set, unlisted polls are
// excluded from the result.
func (r *PollsRepository) List(ctx context.Context, publicOnly bool) ([]domain.Poll, error) {
	query := fmt.Sprintf(`SELECT %s FROM polls`, pollColumns)
	if publicOnly {
		query += ` WHERE is_public`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	defer rows.Close()

	polls := make([]domain.Poll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return polls, nil
}

// Options returns a poll's options in creation order.
func (r *PollsRepository) Options(ctx context.Context, pollID string) ([]domain.Option, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, poll_id, option_text, position
        FROM poll_options
        WHERE poll_id = $1
        ORDER BY position
    `, pollID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	options := make([]domain.Option, 0)
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return options, nil
}

// GetOption fetches a single option by id.
func (r *PollsRepository) GetOption(ctx context.Context, optionID string) (domain.Option, error) {
	var opt domain.Option
	err := r.pool.QueryRow(ctx, `
        SELECT id, poll_id, option_text, position
        FROM poll_options
        WHERE id = $1
    `, optionID).Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Option{}, ErrNotFound
		}
		return domain.Option{}, err
	}
	return opt, nil
}

func scanPoll(row pgx.Row) (domain.Poll, error) {
	var poll domain.Poll
	err := row.Scan(
		&poll.ID,
		&poll.Title,
		&poll.Description,
		&poll.CreatedAt,
		&poll.ExpiresAt,
		&poll.IsPublic,
	)
	if err != nil {
		return domain.Poll{}, err
	}
	return poll, nil
}
