package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitapp/internal/models"
)

// CreateGroup persists a new group and its members.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			"INSERT INTO groups (id, name, owner_email, created_at) VALUES (?, ?, ?, ?)",
			group.ID, group.Name, group.OwnerEmail, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return s.insertMembers(ctx, tx, group.ID, group.Members)
	})
}

func (s *Store) insertMembers(ctx context.Context, tx *sql.Tx, groupID string, members []models.Member) error {
	for i, m := range members {
		var email any
		if m.Email != "" {
			email = m.Email
		}
		_, err := s.exec(ctx, tx,
			"INSERT INTO group_members (group_id, name, email, position) VALUES (?, ?, ?, ?)",
			groupID, m.Name, email, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}
	return nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.queryRow(ctx,
		"SELECT id, name, owner_email, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.OwnerEmail, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.loadMembers(ctx, []string{group.ID})
	if err != nil {
		return nil, err
	}
	group.Members = members[group.ID]
	return group, nil
}

// ListGroups returns all groups ordered by creation time.
func (s *Store) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.listGroups(ctx,
		"SELECT id, name, owner_email, created_at FROM groups ORDER BY created_at, id",
	)
}

// ListGroupsForMember returns groups the user owns or belongs to by email.
func (s *Store) ListGroupsForMember(ctx context.Context, email string) ([]*models.Group, error) {
	email = strings.ToLower(email)
	return s.listGroups(ctx,
		`SELECT id, name, owner_email, created_at FROM groups g
		 WHERE LOWER(g.owner_email) = ?
		    OR EXISTS (SELECT 1 FROM group_members gm WHERE gm.group_id = g.id AND LOWER(gm.email) = ?)
		 ORDER BY created_at, id`,
		email, email,
	)
}

func (s *Store) listGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	var ids []string
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.OwnerEmail, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
		ids = append(ids, group.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	members, err := s.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		group.Members = members[group.ID]
	}
	return groups, nil
}

// loadMembers fetches members for the given groups keyed by group ID.
func (s *Store) loadMembers(ctx context.Context, groupIDs []string) (map[string][]models.Member, error) {
	out := make(map[string][]models.Member, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}

	args := make([]any, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}
	rows, err := s.query(ctx, s.db,
		"SELECT group_id, name, email FROM group_members WHERE group_id IN ("+placeholders(len(groupIDs))+") ORDER BY group_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		var m models.Member
		var email sql.NullString
		if err := rows.Scan(&groupID, &m.Name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if email.Valid {
			m.Email = email.String
		}
		out[groupID] = append(out[groupID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return out, nil
}

// UpdateGroup renames the group and replaces its members in one transaction.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, "UPDATE groups SET name = ? WHERE id = ?", group.Name, group.ID)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		} else if n == 0 {
			return notFound("group", group.ID)
		}

		if _, err := s.exec(ctx, tx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		return s.insertMembers(ctx, tx, group.ID, group.Members)
	})
}

// DeleteGroup removes the group together with its expenses and members.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		statements := []string{
			"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
			"DELETE FROM expenses WHERE group_id = ?",
			"DELETE FROM group_members WHERE group_id = ?",
		}
		for _, stmt := range statements {
			if _, err := s.exec(ctx, tx, stmt, groupID); err != nil {
				return fmt.Errorf("failed to delete group data: %w", err)
			}
		}

		res, err := s.exec(ctx, tx, "DELETE FROM groups WHERE id = ?", groupID)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		} else if n == 0 {
			return notFound("group", groupID)
		}
		return nil
	})
}

// placeholders returns "?, ?, ..." with n entries.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
