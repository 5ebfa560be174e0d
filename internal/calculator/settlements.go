package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// settleEpsilon is the remainder below which a party counts as settled.
var settleEpsilon = decimal.RequireFromString("0.01")

// Settlement is a suggested direct payment between two members.
type Settlement struct {
	From   string // debtor
	To     string // creditor
	Amount decimal.Decimal
}

type party struct {
	name      string
	remaining decimal.Decimal
}

// ComputeSettlements derives transfers that bring every balance to zero.
//
// Members within a cent of zero are treated as settled and never appear in a
// transfer, not only those at exactly zero: a -0.004 debtor is dropped even
// when a creditor exists. Debtors and creditors are each sorted by
// magnitude, largest first, ties broken by name. The largest debtor pays the largest creditor the smaller of
// the two magnitudes; whoever drops below one cent leaves the pool. This
// greedy matching usually gives few transfers but is not guaranteed to find
// the minimum count.
func ComputeSettlements(balances Balances) []Settlement {
	var debtors, creditors []*party
	for name, amount := range balances {
		if amount.Abs().LessThan(settleEpsilon) {
			continue // already settled
		}
		switch amount.Sign() {
		case -1:
			debtors = append(debtors, &party{name: name, remaining: amount.Neg()})
		case 1:
			creditors = append(creditors, &party{name: name, remaining: amount})
		}
	}
	sortParties(debtors)
	sortParties(creditors)

	var settlements []Settlement
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor, creditor := debtors[0], creditors[0]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.IsPositive() {
			settlements = append(settlements, Settlement{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(settleEpsilon) {
			debtors = debtors[1:]
		}
		if creditor.remaining.LessThan(settleEpsilon) {
			creditors = creditors[1:]
		}
	}

	return settlements
}

func sortParties(parties []*party) {
	sort.SliceStable(parties, func(i, j int) bool {
		if c := parties[i].remaining.Cmp(parties[j].remaining); c != 0 {
			return c > 0
		}
		return parties[i].name < parties[j].name
	})
}

// FindSettlement returns the transfer from debtor to creditor, if any.
func FindSettlement(settlements []Settlement, debtor, creditor string) (Settlement, bool) {
	for _, s := range settlements {
		if s.From == debtor && s.To == creditor {
			return s, true
		}
	}
	return Settlement{}, false
}
