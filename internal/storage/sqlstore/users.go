package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
)

const userColumns = "id, token_identifier, name, email, image_url, payment_handle, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.TokenIdentifier,
		&user.Name,
		&user.Email,
		&user.ImageURL,
		&user.PaymentHandle,
		&user.CreatedAt,
	)
	return user, err
}

// EnsureUser inserts the user if no user has its token identifier yet, then
// returns the stored user.
func (s *Store) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.exec(ctx, s.db, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (token_identifier) DO NOTHING
	`,
		user.ID,
		user.TokenIdentifier,
		user.Name,
		user.Email,
		user.ImageURL,
		user.PaymentHandle,
		user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.GetUserByToken(ctx, user.TokenIdentifier)
}

// GetUser retrieves a user by their ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.queryRow(ctx, s.db,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByToken retrieves a user by the identity provider's subject.
func (s *Store) GetUserByToken(ctx context.Context, tokenIdentifier string) (*models.User, error) {
	user, err := scanUser(s.queryRow(ctx, s.db,
		"SELECT "+userColumns+" FROM users WHERE token_identifier = ?", tokenIdentifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user with token %s: %w", tokenIdentifier, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return user, nil
}

// GetUsers retrieves the users with the given IDs.
func (s *Store) GetUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := s.query(ctx, s.db,
		"SELECT "+userColumns+" FROM users WHERE id IN ("+placeholders(len(ids))+")",
		stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// UpdateUser updates the profile fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE users SET name = ?, image_url = ?, payment_handle = ? WHERE id = ?",
		user.Name, user.ImageURL, user.PaymentHandle, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return affectedOne(res, "user", user.ID)
}

// SearchUsers finds users whose name or email contains query.
func (s *Store) SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]*models.User, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := s.query(ctx, s.db, `
		SELECT `+userColumns+` FROM users
		WHERE id <> ? AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)
		ORDER BY name, id
		LIMIT ?
	`, excludeID, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
