// Package store implements the persistent repository for users, applications,
// the blacklist and editable content on top of sqlx/postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/poetbot/internal/logger"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("store: not found")

const applicationColumns = `
	a.application_id,
	a.user_id,
	a.poem_text,
	a.second_block,
	a.status,
	a.created_at,
	a.updated_at,
	COALESCE(u.username, 'неизвестно') AS username,
	COALESCE(u.first_name, 'Неизвестный') AS first_name,
	COALESCE(u.last_name, '') AS last_name`

// Store wraps the database handle with the bot's queries.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store around an open connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// UpsertUser inserts the user or refreshes its profile fields.
func (s *Store) UpsertUser(ctx context.Context, userID int64, username, lastName *string, firstName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name`,
		userID, username, firstName, lastName,
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", userID, err)
	}
	return nil
}

// GetUser fetches a user by id or returns ErrNotFound.
func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `
		SELECT user_id, username, first_name, last_name, created_at
		FROM users WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &u, nil
}

// AllUserIDs returns identifiers of every known user.
func (s *Store) AllUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM users ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// IsBlacklisted reports membership in the blacklist.
func (s *Store) IsBlacklisted(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM blacklist WHERE user_id = $1)`, userID)
	if err != nil {
		return false, fmt.Errorf("blacklist check %d: %w", userID, err)
	}
	return exists, nil
}

// AddToBlacklist inserts the id; adding an already present id is a no-op.
func (s *Store) AddToBlacklist(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blacklist (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("blacklist add %d: %w", userID, err)
	}
	return nil
}

// RemoveFromBlacklist deletes the id; removing an absent id is a no-op.
func (s *Store) RemoveFromBlacklist(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blacklist WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("blacklist remove %d: %w", userID, err)
	}
	return nil
}

// Blacklist returns all blacklisted ids in insertion order.
func (s *Store) Blacklist(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.SelectContext(ctx, &ids,
		`SELECT user_id FROM blacklist ORDER BY created_at, user_id`)
	if err != nil {
		return nil, fmt.Errorf("blacklist list: %w", err)
	}
	return ids, nil
}

// GetContent fetches editable content by key or returns ErrNotFound.
func (s *Store) GetContent(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM content WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Warn(ctx, "store", "content.missing", slog.String("key", key))
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get content %q: %w", key, err)
	}
	return value, nil
}

// SetContent overwrites the content value for a key.
func (s *Store) SetContent(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set content %q: %w", key, err)
	}
	return nil
}

// ActiveApplication returns the user's application with status pending or
// approved, or ErrNotFound when the user has none.
func (s *Store) ActiveApplication(ctx context.Context, userID int64) (*Application, error) {
	var app Application
	err := s.db.GetContext(ctx, &app, `
		SELECT `+applicationColumns+`
		FROM applications a
		LEFT JOIN users u ON a.user_id = u.user_id
		WHERE a.user_id = $1 AND a.status IN ($2, $3)
		ORDER BY a.created_at DESC
		LIMIT 1`,
		userID, StatusPending, StatusApproved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("active application for %d: %w", userID, err)
	}
	return &app, nil
}

// CreateApplication inserts a new pending application and returns its id.
func (s *Store) CreateApplication(ctx context.Context, userID int64, poemText string, secondBlock bool) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO applications (user_id, poem_text, second_block, status)
		VALUES ($1, $2, $3, $4)
		RETURNING application_id`,
		userID, poemText, secondBlock, StatusPending)
	if err != nil {
		return 0, fmt.Errorf("create application for %d: %w", userID, err)
	}
	return id, nil
}

// PendingApplications lists pending applications ascending by creation time.
func (s *Store) PendingApplications(ctx context.Context) ([]Application, error) {
	return s.listApplications(ctx, `a.status = '`+StatusPending+`'`)
}

// ApprovedApplications lists approved applications ascending by creation time.
func (s *Store) ApprovedApplications(ctx context.Context) ([]Application, error) {
	return s.listApplications(ctx, `a.status = '`+StatusApproved+`'`)
}

// SecondBlockApplications lists approved applications opted into the second block.
func (s *Store) SecondBlockApplications(ctx context.Context) ([]Application, error) {
	return s.listApplications(ctx, `a.status = '`+StatusApproved+`' AND a.second_block`)
}

func (s *Store) listApplications(ctx context.Context, where string) ([]Application, error) {
	var apps []Application
	err := s.db.SelectContext(ctx, &apps, `
		SELECT `+applicationColumns+`
		FROM applications a
		LEFT JOIN users u ON a.user_id = u.user_id
		WHERE `+where+`
		ORDER BY a.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ApplicationByID fetches a single application or returns ErrNotFound.
func (s *Store) ApplicationByID(ctx context.Context, id int64) (*Application, error) {
	var app Application
	err := s.db.GetContext(ctx, &app, `
		SELECT `+applicationColumns+`
		FROM applications a
		LEFT JOIN users u ON a.user_id = u.user_id
		WHERE a.application_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return &app, nil
}

// SetApplicationStatus moves a pending application to a new status. A row
// that vanished or was already decided reports ErrNotFound; a status never
// returns to pending.
func (s *Store) SetApplicationStatus(ctx context.Context, id int64, status string) error {
	if !ValidTransition(StatusPending, status) {
		return fmt.Errorf("set application %d status: %q is not a decision", id, status)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $2, updated_at = now()
		WHERE application_id = $1 AND status = $3`, id, status, StatusPending)
	if err != nil {
		return fmt.Errorf("set application %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set application %d status: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.Info(ctx, "store", "application.status",
		slog.Int64("application_id", id),
		slog.String("status", status),
	)
	return nil
}

// CountApplications returns the total number of applications of any status.
func (s *Store) CountApplications(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM applications`); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

// DeleteAllApplications removes every application and reports how many were deleted.
func (s *Store) DeleteAllApplications(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM applications`)
	if err != nil {
		return 0, fmt.Errorf("delete all applications: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all applications: %w", err)
	}
	return deleted, nil
}
