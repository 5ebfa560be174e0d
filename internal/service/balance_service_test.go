package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/pkg/api"
)

func addExpense(t *testing.T, c clients, groupID, amount, paidBy string, splitWith ...string) {
	t.Helper()
	_, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:   groupID,
		Amount:    decimal.RequireFromString(amount),
		PaidBy:    paidBy,
		SplitWith: splitWith,
	}))
	require.NoError(t, err)
}

func TestGetGroupBalances(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.as(t, ownerEmail)
	group := createTripGroup(t, alice)

	addExpense(t, alice, group.Id, "90", "Alice", "Alice", "Bob", "Charlie")
	addExpense(t, alice, group.Id, "30", "Bob", "Bob", "Charlie")

	resp, err := alice.balances.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupId: group.Id}))
	require.NoError(t, err)

	assert.Equal(t, []*api.Balance{
		{Name: "Alice", Amount: "60.00"},
		{Name: "Bob", Amount: "-15.00"},
		{Name: "Charlie", Amount: "-45.00"},
	}, resp.Msg.Balances)

	assert.Equal(t, []*api.Settlement{
		{From: "Charlie", To: "Alice", Amount: "45.00"},
		{From: "Bob", To: "Alice", Amount: "15.00"},
	}, resp.Msg.Settlements)

	assert.Equal(t, &api.Stats{Total: "120.00", ExpenseCount: 2, AveragePerPerson: "40.00"}, resp.Msg.Stats)
}

func TestGetGroupBalances_EmptyGroup(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as(t, ownerEmail)
	group := createTripGroup(t, alice)

	resp, err := alice.balances.GetGroupBalances(context.Background(), connect.NewRequest(&api.GetGroupBalancesRequest{GroupId: group.Id}))
	require.NoError(t, err)

	require.Len(t, resp.Msg.Balances, 3)
	for _, b := range resp.Msg.Balances {
		assert.Equal(t, "0.00", b.Amount)
	}
	assert.Empty(t, resp.Msg.Settlements)
	assert.Equal(t, 0, resp.Msg.Stats.ExpenseCount)
}

func TestGetGroupBalances_RemovedMemberKeepsBalance(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.as(t, ownerEmail)
	group := createTripGroup(t, alice)

	addExpense(t, alice, group.Id, "20", "Alice", "Alice", "Charlie")

	_, err := alice.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupId: group.Id,
		Name:    group.Name,
		Members: []*api.Member{{Name: "Alice", Email: ownerEmail}, {Name: "Bob"}},
	}))
	require.NoError(t, err)

	resp, err := alice.balances.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupId: group.Id}))
	require.NoError(t, err)

	assert.Equal(t, []*api.Balance{
		{Name: "Alice", Amount: "10.00"},
		{Name: "Bob", Amount: "0.00"},
		{Name: "Charlie", Amount: "-10.00"},
	}, resp.Msg.Balances)
	require.Len(t, resp.Msg.Settlements, 1)
	assert.Equal(t, "Charlie", resp.Msg.Settlements[0].From)
}

func TestGetGroupBalances_AccessDenied(t *testing.T) {
	env := setupTestServer(t)
	group := createTripGroup(t, env.as(t, ownerEmail))

	_, err := env.as(t, "mallory@example.com").balances.GetGroupBalances(context.Background(), connect.NewRequest(&api.GetGroupBalancesRequest{GroupId: group.Id}))
	assertCode(t, connect.CodePermissionDenied, err)
}
