package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/internal/auth"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage/sqlite"
)

func TestPrintBalances(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	group := &models.Group{
		Name:       "Trip",
		OwnerEmail: "alice@example.com",
		Members:    []models.Member{{Name: "Alice"}, {Name: "Bob"}, {Name: "Charlie"}},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		GroupID:   group.ID,
		Amount:    decimal.RequireFromString("90"),
		PaidBy:    "Alice",
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SplitWith: []string{"Alice", "Bob", "Charlie"},
	}))

	var out bytes.Buffer
	require.NoError(t, printBalances(ctx, &out, store, group.ID))

	text := out.String()
	assert.Contains(t, text, "Trip: 1 expenses, total 90.00, 30.00 per person")
	assert.Contains(t, text, "60.00")
	assert.Contains(t, text, "-30.00")
	assert.Contains(t, text, "FROM")
	assert.Regexp(t, `Bob\s+Alice\s+30\.00`, text)
	assert.Regexp(t, `Charlie\s+Alice\s+30\.00`, text)
}

func TestPrintBalancesSettled(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	group := &models.Group{Name: "Empty", OwnerEmail: "a@example.com", Members: []models.Member{{Name: "A"}}}
	require.NoError(t, store.CreateGroup(ctx, group))

	var out bytes.Buffer
	require.NoError(t, printBalances(ctx, &out, store, group.ID))
	assert.Contains(t, out.String(), "All settled up.")
}

func TestPrintBalancesUnknownGroup(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	err = printBalances(context.Background(), &bytes.Buffer{}, store, "missing")
	assert.ErrorContains(t, err, "loading group")
}

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--email", "Alice@Example.com", "--name", "Alice"})
	require.NoError(t, cmd.Execute())

	claims, err := auth.NewJWTManager("cli-secret", time.Hour).Validate(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", claims.Email)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--email", "a@example.com"})
	assert.ErrorContains(t, cmd.Execute(), "JWT_SECRET")
}

func TestBalancesRequiresGroupFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"balances"})
	assert.Error(t, cmd.Execute())
}
