// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitapp/internal/models"
)

// ErrNotFound is wrapped by stores when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for groups and expenses.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer. Every multi-row write is atomic.
type Store interface {
	// CreateGroup persists a new group with its members.
	// The group.ID and group.CreatedAt fields are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns every group. Used by background jobs.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// ListGroupsForMember returns the groups owned by email or listing it as a member.
	ListGroupsForMember(ctx context.Context, email string) ([]*models.Group, error)

	// UpdateGroup replaces the group's name and member list.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group with its members and expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists an expense and its split rows.
	// The expense.ID and expense.CreatedAt fields are populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup returns a group's expenses ordered by date.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// ListMembersInExpenses returns the distinct names that paid for or
	// share any expense in the group, sorted.
	ListMembersInExpenses(ctx context.Context, groupID string) ([]string, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
