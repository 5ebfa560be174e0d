package api

// Amounts below are rounded to two decimals for display.

type Balance struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Settlement struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type Stats struct {
	Total            string `json:"total"`
	ExpenseCount     int    `json:"expenseCount"`
	AveragePerPerson string `json:"averagePerPerson"`
}

type GetGroupBalancesRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances    []*Balance    `json:"balances"`
	Settlements []*Settlement `json:"settlements"`
	Stats       *Stats        `json:"stats"`
}
