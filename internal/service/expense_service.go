package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

// ExpenseService records and lists group expenses.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
}

func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates the expense against the group's current members
// and stores it.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupId,
		"paid_by", req.Msg.PaidBy,
		"split_count", len(req.Msg.SplitWith),
	)

	group, err := loadGroup(ctx, s.store, "CreateExpense", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, toConnectError("CreateExpense", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Amount:      req.Msg.Amount,
		Description: strings.TrimSpace(req.Msg.Description),
		PaidBy:      req.Msg.PaidBy,
		Date:        date,
		SplitWith:   req.Msg.SplitWith,
	}
	if err := expense.ValidateAgainst(group); err != nil {
		return nil, toConnectError("CreateExpense", err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError("CreateExpense", err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "amount", expense.Amount.String())

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses returns the group's expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupId)

	group, err := loadGroup(ctx, s.store, "ListExpenses", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError("ListExpenses", err)
	}

	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = expenseToAPI(&expenses[i])
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}
