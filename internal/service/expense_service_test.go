package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

func TestCreateExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.as(t, ownerEmail)
	group := createTripGroup(t, alice)

	resp, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:     group.Id,
		Amount:      decimal.RequireFromString("45.50"),
		Description: " Groceries ",
		PaidBy:      "Alice",
		Date:        "2024-03-01",
		SplitWith:   []string{"Alice", "Bob"},
	}))
	require.NoError(t, err)

	e := resp.Msg.Expense
	assert.NotEmpty(t, e.Id)
	assert.Equal(t, "Groceries", e.Description)
	assert.Equal(t, "2024-03-01", e.Date)
	assert.Equal(t, "45.50", e.Amount)

	list, err := alice.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 1)
	assert.Equal(t, "45.50", list.Msg.Expenses[0].Amount)
	assert.Equal(t, []string{"Alice", "Bob"}, list.Msg.Expenses[0].SplitWith)
}

func TestCreateExpense_Validation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.as(t, ownerEmail)
	group := createTripGroup(t, alice)

	valid := func() *api.CreateExpenseRequest {
		return &api.CreateExpenseRequest{
			GroupId:   group.Id,
			Amount:    decimal.NewFromInt(10),
			PaidBy:    "Alice",
			SplitWith: []string{"Alice", "Bob"},
		}
	}

	tests := []struct {
		name   string
		mutate func(r *api.CreateExpenseRequest)
	}{
		{"zero amount", func(r *api.CreateExpenseRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *api.CreateExpenseRequest) { r.Amount = decimal.NewFromInt(-5) }},
		{"sub-cent amount", func(r *api.CreateExpenseRequest) { r.Amount = decimal.RequireFromString("1.005") }},
		{"empty split", func(r *api.CreateExpenseRequest) { r.SplitWith = nil }},
		{"unknown payer", func(r *api.CreateExpenseRequest) { r.PaidBy = "Zed" }},
		{"unknown split member", func(r *api.CreateExpenseRequest) { r.SplitWith = []string{"Alice", "Zed"} }},
		{"duplicate split member", func(r *api.CreateExpenseRequest) { r.SplitWith = []string{"Bob", "Bob"} }},
		{"bad date", func(r *api.CreateExpenseRequest) { r.Date = "03/01/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(req))
			assertCode(t, connect.CodeInvalidArgument, err)
		})
	}

	list, err := alice.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Expenses)
}

func TestCreateExpense_NonNumericAmount(t *testing.T) {
	env := setupTestServer(t)
	group := createTripGroup(t, env.as(t, ownerEmail))

	body := `{"groupId":"` + group.Id + `","amount":"twelve","paidBy":"Alice","splitWith":["Bob"]}`
	req, err := http.NewRequest(http.MethodPost, env.server.URL+apiconnect.ExpenseServiceCreateExpenseProcedure, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.token(t, ownerEmail))

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateExpense_AccessDenied(t *testing.T) {
	env := setupTestServer(t)
	group := createTripGroup(t, env.as(t, ownerEmail))

	_, err := env.as(t, "mallory@example.com").expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:   group.Id,
		Amount:    decimal.NewFromInt(10),
		PaidBy:    "Alice",
		SplitWith: []string{"Alice"},
	}))
	assertCode(t, connect.CodePermissionDenied, err)
}
