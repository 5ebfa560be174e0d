package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitapp/internal/models"
)

// Share is how much one member owes the payer for a receipt.
type Share struct {
	Name   string
	Amount decimal.Decimal
}

// AssembleReceiptExpense turns a confirmed receipt into one expense.
//
// The amount is the sum of the item amounts. The split set is the union of
// all item sharers in first-appearance order, minus the payer. Every item
// must have at least one sharer, and the resulting split set must not be
// empty. GroupID and Date are left for the caller to fill in.
func AssembleReceiptExpense(storeName string, items []models.ReceiptItem, payer string) (models.Expense, error) {
	if payer == "" {
		return models.Expense{}, &models.ValidationError{Field: "payer", Reason: "payer is required"}
	}
	if err := models.ValidateItems(items); err != nil {
		return models.Expense{}, err
	}

	total := decimal.Zero
	seen := map[string]bool{payer: true}
	var splitWith []string
	for _, item := range items {
		total = total.Add(item.Amount)
		for _, name := range item.SharedWith {
			if seen[name] {
				continue
			}
			seen[name] = true
			splitWith = append(splitWith, name)
		}
	}
	if len(splitWith) == 0 {
		return models.Expense{}, &models.ValidationError{Field: "items", Reason: "no one besides the payer shares this receipt"}
	}

	description := "Receipt"
	if store := strings.TrimSpace(storeName); store != "" {
		description = "Receipt from " + store
	}

	return models.Expense{
		Amount:      total,
		Description: description,
		PaidBy:      payer,
		SplitWith:   splitWith,
	}, nil
}

// ReceiptShares previews what each non-payer owes the payer, item by item:
// each item is split equally among its sharers and the payer's own portions
// are dropped. Items without sharers are skipped. Order follows first
// appearance on the receipt.
func ReceiptShares(items []models.ReceiptItem, payer string) []Share {
	owed := make(map[string]decimal.Decimal)
	var order []string
	for _, item := range items {
		if len(item.SharedWith) == 0 {
			continue
		}
		perPerson := item.Amount.Div(decimal.NewFromInt(int64(len(item.SharedWith))))
		for _, name := range item.SharedWith {
			if name == payer {
				continue
			}
			if _, ok := owed[name]; !ok {
				order = append(order, name)
			}
			owed[name] = owed[name].Add(perPerson)
		}
	}

	shares := make([]Share, len(order))
	for i, name := range order {
		shares[i] = Share{Name: name, Amount: owed[name]}
	}
	return shares
}
