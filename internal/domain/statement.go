package domain

// Statement is a reconstruction of an account over a date range, derived
// entirely from the transaction log. OpeningBalanceMinor is the balance
// snapshot of the last transaction strictly before the range, zero when the
// range predates all activity. The aggregates satisfy
// closing = opening + deposits - withdrawals.
type Statement struct {
	AccountID             string
	OpeningBalanceMinor   int64
	ClosingBalanceMinor   int64
	TotalDepositsMinor    int64
	TotalWithdrawalsMinor int64
	TransactionCount      int
	Transactions          []Transaction
}
