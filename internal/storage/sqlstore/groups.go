package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
)

const groupColumns = "id, name, description, image_url, created_by, created_at"

func scanGroup(row scanner) (*models.Group, error) {
	g := &models.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.ImageURL, &g.CreatedBy, &g.CreatedAt)
	return g, err
}

// CreateGroup persists a new group with its members in order.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.exec(ctx, tx,
		"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.ImageURL, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		m := &group.Members[i]
		if m.JoinedAt == 0 {
			m.JoinedAt = group.CreatedAt
		}
		_, err = s.exec(ctx, tx,
			"INSERT INTO group_members (group_id, user_id, role, joined_at, position) VALUES (?, ?, ?, ?, ?)",
			group.ID, m.UserID, string(m.Role), m.JoinedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID with its members.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	g, err := scanGroup(s.queryRow(ctx, s.db,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadMembers(ctx, []*models.Group{g}); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGroup updates a group's name, description and image.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE groups SET name = ?, description = ?, image_url = ? WHERE id = ?",
		group.Name, group.Description, group.ImageURL, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return affectedOne(res, "group", group.ID)
}

// AddMember appends a member to the group.
func (s *Store) AddMember(ctx context.Context, groupID string, member models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int64
	err = s.queryRow(ctx, tx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM group_members WHERE group_id = ?", groupID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to get member position: %w", err)
	}

	_, err = s.exec(ctx, tx, `
		INSERT INTO group_members (group_id, user_id, role, joined_at, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, member.UserID, string(member.Role), member.JoinedAt, position)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveMember removes a user from the group.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID string) error {
	res, err := s.exec(ctx, s.db,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?", groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return affectedOne(res, "member", userID)
}

// DeleteGroup deletes a group. Members, expenses and settlements of the group
// are removed by foreign key cascades.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return affectedOne(res, "group", id)
}

// ListGroupsForUser returns every group userID is a member of, newest first.
func (s *Store) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT g.id, g.name, g.description, g.image_url, g.created_by, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC, g.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	if err := s.loadMembers(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Store) loadMembers(ctx context.Context, groups []*models.Group) error {
	if len(groups) == 0 {
		return nil
	}

	index := make(map[string]*models.Group, len(groups))
	ids := make([]string, len(groups))
	for i, g := range groups {
		index[g.ID] = g
		ids[i] = g.ID
	}

	rows, err := s.query(ctx, s.db,
		"SELECT group_id, user_id, role, joined_at FROM group_members WHERE group_id IN ("+
			placeholders(len(ids))+") ORDER BY group_id, position",
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		var m models.Member
		if err := rows.Scan(&groupID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		g := index[groupID]
		g.Members = append(g.Members, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}
	return nil
}
