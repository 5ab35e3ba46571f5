package service

import (
	"context"

	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/domain/ledger"
)

// LedgerService defines the ledger core: account creation plus the three
// balance-mutating operations, each applied to the store as one atomic,
// serializable unit. Any front end (CLI, HTTP) drives these identically.
type LedgerService interface {
	// CreateAccount opens an account with a zero balance under a freshly
	// generated account number.
	// Returns account.ErrEmptyName if the trimmed name is empty.
	CreateAccount(ctx context.Context, name string) (*account.Account, error)

	// GetAccount retrieves an account by its account number.
	// Returns account.ErrNotFound if it does not exist.
	GetAccount(ctx context.Context, accountNo string) (*account.Account, error)

	// Deposit credits the account and appends a DEPOSIT entry.
	// Returns the new balance in paise.
	Deposit(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error)

	// Withdraw debits the account and appends a WITHDRAW entry.
	// Returns account.ErrInsufficientFunds without touching any state when
	// the balance does not cover the amount.
	Withdraw(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error)

	// Transfer moves amountPaise between two distinct accounts, appending a
	// TRANSFER_OUT entry on the sender and a TRANSFER_IN entry on the
	// recipient. All four writes succeed together or none take effect.
	// Returns both new balances (sender first).
	Transfer(ctx context.Context, fromNo, toNo string, amountPaise int64, note string) (int64, int64, error)

	// ListTransactions returns up to limit most recent ledger entries for
	// the account, newest first. Unknown accounts and empty histories yield
	// an empty slice, never an error.
	ListTransactions(ctx context.Context, accountNo string, limit int) ([]*ledger.Entry, error)
}
