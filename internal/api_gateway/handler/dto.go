package handler

// CreateAccountRequest represents a request to open a new account
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	AccountNo    string `json:"account_no"`
	Name         string `json:"name"`
	Balance      string `json:"balance"`
	BalancePaise int64  `json:"balance_paise"`
	OpenedAt     string `json:"opened_at"`
}

// MovementRequest represents a deposit or withdrawal. Amount is a human
// decimal string such as "100.50"; it is parsed and validated server side.
type MovementRequest struct {
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note,omitempty"`
}

// BalanceResponse reports the account balance after a deposit or withdrawal
type BalanceResponse struct {
	AccountNo       string `json:"account_no"`
	NewBalance      string `json:"new_balance"`
	NewBalancePaise int64  `json:"new_balance_paise"`
}

// TransferRequest represents a transfer between two accounts
type TransferRequest struct {
	FromAccount string `json:"from_account" binding:"required"`
	ToAccount   string `json:"to_account" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Note        string `json:"note,omitempty"`
}

// TransferResponse reports both balances after a transfer
type TransferResponse struct {
	FromAccount      string `json:"from_account"`
	ToAccount        string `json:"to_account"`
	Amount           string `json:"amount"`
	FromBalance      string `json:"from_balance"`
	FromBalancePaise int64  `json:"from_balance_paise"`
	ToBalance        string `json:"to_balance"`
	ToBalancePaise   int64  `json:"to_balance_paise"`
}

// EntryResponse represents one ledger entry in API responses
type EntryResponse struct {
	ID                  int64  `json:"id"`
	Type                string `json:"type"`
	Amount              string `json:"amount"`
	AmountPaise         int64  `json:"amount_paise"`
	BalanceAfter        string `json:"balance_after"`
	BalanceAfterPaise   int64  `json:"balance_after_paise"`
	CounterpartyAccount string `json:"counterparty_account,omitempty"`
	Note                string `json:"note,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// TransactionListResponse represents a list of ledger entries in API responses
type TransactionListResponse struct {
	Transactions []EntryResponse `json:"transactions"`
}

// ListQueryParams represents query parameters for transaction listing
type ListQueryParams struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=1000"`
}
