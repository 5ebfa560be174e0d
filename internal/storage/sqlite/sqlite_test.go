package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newGroup(name string, members ...string) *models.Group {
	g := &models.Group{Name: name, OwnerEmail: "owner@example.com"}
	for _, m := range members {
		g.Members = append(g.Members, models.Member{Name: m})
	}
	return g
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and keeps member order", func(t *testing.T) {
		group := newGroup("Trip", "Carol", "Alice", "Bob")
		group.Members[1].Email = "alice@example.com"
		require.NoError(t, store.CreateGroup(ctx, group))
		assert.NotEmpty(t, group.ID)
		assert.NotZero(t, group.CreatedAt)

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Trip", got.Name)
		assert.Equal(t, "owner@example.com", got.OwnerEmail)
		assert.Equal(t, []string{"Carol", "Alice", "Bob"}, got.MemberNames())
		assert.Equal(t, "alice@example.com", got.Members[1].Email)
		assert.Empty(t, got.Members[0].Email)
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateGroup replaces members", func(t *testing.T) {
		group := newGroup("Flat", "A", "B")
		require.NoError(t, store.CreateGroup(ctx, group))

		group.Name = "Flat 2"
		group.Members = []models.Member{{Name: "B"}, {Name: "C", Email: "c@example.com"}}
		require.NoError(t, store.UpdateGroup(ctx, group))

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat 2", got.Name)
		assert.Equal(t, []string{"B", "C"}, got.MemberNames())
	})

	t.Run("UpdateGroup on missing group", func(t *testing.T) {
		err := store.UpdateGroup(ctx, &models.Group{ID: "missing", Name: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListGroupsForMember matches owner and member email", func(t *testing.T) {
		owned := newGroup("Owned")
		owned.OwnerEmail = "Dana@Example.com"
		require.NoError(t, store.CreateGroup(ctx, owned))

		member := newGroup("Member", "Dana")
		member.Members[0].Email = "dana@example.com"
		require.NoError(t, store.CreateGroup(ctx, member))

		groups, err := store.ListGroupsForMember(ctx, "DANA@example.com")
		require.NoError(t, err)
		var names []string
		for _, g := range groups {
			names = append(names, g.Name)
		}
		assert.ElementsMatch(t, []string{"Owned", "Member"}, names)
	})

	t.Run("ListGroups returns everything", func(t *testing.T) {
		groups, err := store.ListGroups(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(groups), 4)
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := newGroup("Dinner", "Alice", "Bob", "Charlie")
	require.NoError(t, store.CreateGroup(ctx, group))

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("CreateExpense round-trips amount and split order", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Amount:      decimal.RequireFromString("90.10"),
			Description: "Pizza",
			PaidBy:      "Alice",
			Date:        day,
			SplitWith:   []string{"Charlie", "Bob", "Alice"},
		}
		require.NoError(t, store.CreateExpense(ctx, expense))
		assert.NotEmpty(t, expense.ID)

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		got := expenses[0]
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("90.10")), got.Amount.String())
		assert.Equal(t, "Pizza", got.Description)
		assert.Equal(t, "Alice", got.PaidBy)
		assert.True(t, got.Date.Equal(day))
		assert.Equal(t, []string{"Charlie", "Bob", "Alice"}, got.SplitWith)
	})

	t.Run("expenses are ordered by date", func(t *testing.T) {
		earlier := &models.Expense{
			GroupID:   group.ID,
			Amount:    decimal.NewFromInt(10),
			PaidBy:    "Bob",
			Date:      day.AddDate(0, 0, -1),
			SplitWith: []string{"Bob"},
		}
		require.NoError(t, store.CreateExpense(ctx, earlier))

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, earlier.ID, expenses[0].ID)
	})

	t.Run("CreateExpense for missing group", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID:   "missing",
			Amount:    decimal.NewFromInt(1),
			PaidBy:    "Alice",
			SplitWith: []string{"Alice"},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListMembersInExpenses is distinct and sorted", func(t *testing.T) {
		names, err := store.ListMembersInExpenses(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
	})

	t.Run("ListExpensesByGroup on empty group", func(t *testing.T) {
		empty := newGroup("Empty", "Zed")
		require.NoError(t, store.CreateGroup(ctx, empty))

		expenses, err := store.ListExpensesByGroup(ctx, empty.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("DeleteGroup removes expenses", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)

		assert.ErrorIs(t, store.DeleteGroup(ctx, group.ID), storage.ErrNotFound)
	})
}

func TestNewInMemory(t *testing.T) {
	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	group := newGroup("Mem", "A")
	require.NoError(t, store.CreateGroup(context.Background(), group))
	_, err = store.GetGroup(context.Background(), group.ID)
	require.NoError(t, err)
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
