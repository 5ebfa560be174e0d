// Package calculator holds the balance engine: net balances per member,
// settlement matching, and receipt-to-expense assembly.
//
// All functions are pure. Money is accumulated as exact decimals and only
// rounded to cents by the presentation helpers.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitapp/internal/models"
)

// Balances maps member name to net balance.
// Positive = the group owes this member, negative = this member owes the group.
type Balances map[string]decimal.Decimal

// MemberBalance is one entry of an ordered balance listing.
type MemberBalance struct {
	Name   string
	Amount decimal.Decimal
}

// ComputeBalances nets every expense into a per-member balance.
//
// Algorithm:
// - Every known member starts at zero
// - For each expense the payer is credited the full amount
// - Each name in SplitWith is debited amount / len(SplitWith)
//
// Names that appear in expenses but not in members (membership edited after
// the expense was recorded) get their own entry. An expense with an empty
// split set credits the payer and debits nobody.
func ComputeBalances(members []models.Member, expenses []models.Expense) Balances {
	balances := make(Balances, len(members))
	for _, m := range members {
		balances[m.Name] = decimal.Zero
	}

	for _, e := range expenses {
		balances[e.PaidBy] = balances[e.PaidBy].Add(e.Amount)

		if len(e.SplitWith) == 0 {
			continue
		}
		perPerson := e.Amount.Div(decimal.NewFromInt(int64(len(e.SplitWith))))
		for _, name := range e.SplitWith {
			balances[name] = balances[name].Sub(perPerson)
		}
	}

	return balances
}

// Sum returns the total of all balances. Zero (within division precision)
// for any expense set.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range b {
		sum = sum.Add(amount)
	}
	return sum
}

// OrderedBalances lists balances for presentation: group members first in
// group order, then names only seen in expenses, sorted by name.
func OrderedBalances(members []models.Member, balances Balances) []MemberBalance {
	out := make([]MemberBalance, 0, len(balances))
	known := make(map[string]bool, len(members))
	for _, m := range members {
		if known[m.Name] {
			continue
		}
		known[m.Name] = true
		out = append(out, MemberBalance{Name: m.Name, Amount: balances[m.Name]})
	}

	var extra []string
	for name := range balances {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, MemberBalance{Name: name, Amount: balances[name]})
	}
	return out
}

// Stats summarizes a group's spending.
type Stats struct {
	Total            decimal.Decimal
	ExpenseCount     int
	AveragePerPerson decimal.Decimal // Total / member count, zero for an empty group
}

// ComputeStats totals the expenses and averages them over the member count.
func ComputeStats(members []models.Member, expenses []models.Expense) Stats {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	stats := Stats{Total: total, ExpenseCount: len(expenses), AveragePerPerson: decimal.Zero}
	if len(members) > 0 {
		stats.AveragePerPerson = total.Div(decimal.NewFromInt(int64(len(members))))
	}
	return stats
}

// Money formats an amount the way every API response shows it.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
