package models

type StatementResponse struct {
	AccountID             string                `json:"accountId"`
	StartDate             string                `json:"startDate"`
	EndDate               string                `json:"endDate"`
	OpeningBalance        string                `json:"openingBalance"`
	OpeningBalanceMinor   int64                 `json:"openingBalanceMinor"`
	ClosingBalance        string                `json:"closingBalance"`
	ClosingBalanceMinor   int64                 `json:"closingBalanceMinor"`
	TotalDeposits         string                `json:"totalDeposits"`
	TotalDepositsMinor    int64                 `json:"totalDepositsMinor"`
	TotalWithdrawals      string                `json:"totalWithdrawals"`
	TotalWithdrawalsMinor int64                 `json:"totalWithdrawalsMinor"`
	TransactionCount      int                   `json:"transactionCount"`
	Transactions          []TransactionResponse `json:"transactions"`
}
