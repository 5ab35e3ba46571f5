package account

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByAccountNo(ctx context.Context, accountNo string) (*Account, error)
	Exists(ctx context.Context, accountNo string) (bool, error)

	// LockForUpdate acquires a row lock on the account for the duration of
	// the surrounding transaction and returns its current state.
	LockForUpdate(ctx context.Context, accountNo string) (*Account, error)

	// UpdateBalance sets the account balance to the given absolute value.
	// Callers must hold the row lock obtained via LockForUpdate.
	UpdateBalance(ctx context.Context, accountNo string, newBalance int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrNotFound indicates a missing account
type ErrNotFound struct {
	AccountNo string
}

func (e ErrNotFound) Error() string {
	return "account not found: " + e.AccountNo
}

// Is matches any ErrNotFound when the target carries no account number,
// otherwise matches on the account number.
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.AccountNo == "" {
		return true
	}
	return e.AccountNo == t.AccountNo
}
