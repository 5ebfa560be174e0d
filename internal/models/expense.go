package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money paid by one member on behalf of the members in SplitWith.
// Expenses are immutable once stored.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Amount is the total paid. Always positive with at most two decimal places.
	Amount decimal.Decimal

	// Description is free text (e.g., "Groceries", "Receipt from Costco").
	Description string

	// PaidBy is the name of the member who paid.
	PaidBy string

	// Date is when the expense happened.
	Date time.Time

	// SplitWith lists the member names sharing the cost equally.
	SplitWith []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

var hundred = decimal.NewFromInt(100)

// HasCents reports whether d has at most two decimal places.
func HasCents(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}

// Validate checks the expense against submission rules. It does not check
// membership; callers with a group at hand use ValidateAgainst.
func (e *Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if !HasCents(e.Amount) {
		return &ValidationError{Field: "amount", Reason: "amount " + e.Amount.String() + " has more than 2 decimal places"}
	}
	if e.PaidBy == "" {
		return &ValidationError{Field: "paidBy", Reason: "payer is required"}
	}
	if len(e.SplitWith) == 0 {
		return &ValidationError{Field: "splitWith", Reason: "expense must be split with at least one member"}
	}
	seen := make(map[string]bool, len(e.SplitWith))
	for i, name := range e.SplitWith {
		if name == "" {
			return &ValidationError{Field: "splitWith", Reason: "member name is required", Index: i}
		}
		if seen[name] {
			return &ValidationError{Field: "splitWith", Reason: "duplicate member " + quote(name), Index: i}
		}
		seen[name] = true
	}
	return nil
}

// ValidateAgainst runs Validate and then checks that the payer and every
// split member belong to the group.
func (e *Expense) ValidateAgainst(g *Group) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !g.HasMember(e.PaidBy) {
		return &ValidationError{Field: "paidBy", Reason: quote(e.PaidBy) + " is not a member of the group"}
	}
	for i, name := range e.SplitWith {
		if !g.HasMember(name) {
			return &ValidationError{Field: "splitWith", Reason: quote(name) + " is not a member of the group", Index: i}
		}
	}
	return nil
}
