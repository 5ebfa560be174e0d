package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

// BalanceService reports who owes whom in a group.
type BalanceService struct {
	apiconnect.UnimplementedBalanceServiceHandler
	store storage.Store
}

func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetGroupBalances recomputes balances and settlements from the stored
// expenses on every call.
func (s *BalanceService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupId)

	group, err := loadGroup(ctx, s.store, "GetGroupBalances", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError("GetGroupBalances", err)
	}

	balances := calculator.ComputeBalances(group.Members, expenses)
	settlements := calculator.ComputeSettlements(balances)
	stats := calculator.ComputeStats(group.Members, expenses)

	resp := &api.GetGroupBalancesResponse{
		Balances:    []*api.Balance{},
		Settlements: []*api.Settlement{},
		Stats: &api.Stats{
			Total:            calculator.Money(stats.Total),
			ExpenseCount:     stats.ExpenseCount,
			AveragePerPerson: calculator.Money(stats.AveragePerPerson),
		},
	}
	for _, b := range calculator.OrderedBalances(group.Members, balances) {
		resp.Balances = append(resp.Balances, &api.Balance{Name: b.Name, Amount: calculator.Money(b.Amount)})
	}
	for _, st := range settlements {
		resp.Settlements = append(resp.Settlements, &api.Settlement{From: st.From, To: st.To, Amount: calculator.Money(st.Amount)})
	}

	slog.Info("GetGroupBalances successful",
		"group_id", group.ID,
		"expenses", len(expenses),
		"settlements", len(settlements),
	)

	return connect.NewResponse(resp), nil
}
