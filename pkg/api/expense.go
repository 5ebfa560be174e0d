package api

import "github.com/shopspring/decimal"

// DateLayout is the wire format of expense dates.
const DateLayout = "2006-01-02"

type Expense struct {
	Id      string `json:"id"`
	GroupId string `json:"groupId"`
	// Amount is formatted with two decimal places.
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	PaidBy      string   `json:"paidBy"`
	Date        string   `json:"date"`
	SplitWith   []string `json:"splitWith"`
	CreatedAt   int64    `json:"createdAt"`
}

type CreateExpenseRequest struct {
	GroupId     string          `json:"groupId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PaidBy      string          `json:"paidBy"`
	// Date is YYYY-MM-DD; empty means today.
	Date      string   `json:"date,omitempty"`
	SplitWith []string `json:"splitWith"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupId string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}
