// Package postgres provides PostgreSQL implementations of the domain
// repositories. Compound mutations (balance update plus ledger append) run
// against a shared pgx.Tx obtained through WithTx so the store applies them
// as one atomic unit.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/platform/persistence"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository backed by
// the connection pool.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction. All operations
// on the returned repository join that transaction's atomic unit.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (account_no, name, balance_paise, opened_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.AccountNo,
		acc.Name,
		acc.BalancePaise,
		acc.OpenedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByAccountNo retrieves an account by its account number
func (r *AccountRepository) GetByAccountNo(ctx context.Context, accountNo string) (*account.Account, error) {
	query := `
		SELECT account_no, name, balance_paise, opened_at
		FROM accounts
		WHERE account_no = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, accountNo).Scan(
		&acc.AccountNo,
		&acc.Name,
		&acc.BalancePaise,
		&acc.OpenedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound{AccountNo: accountNo}
		}
		r.logger.Error("Failed to get account", "account_no", accountNo, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// Exists reports whether an account number is already taken.
func (r *AccountRepository) Exists(ctx context.Context, accountNo string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_no = $1)`

	var exists bool
	if err := r.querier.QueryRow(ctx, query, accountNo).Scan(&exists); err != nil {
		r.logger.Error("Failed to check account existence", "account_no", accountNo, "error", err)
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

// LockForUpdate obtains a row lock on the account and returns its current
// state. Must be used within a transaction.
func (r *AccountRepository) LockForUpdate(ctx context.Context, accountNo string) (*account.Account, error) {
	query := `
		SELECT account_no, name, balance_paise, opened_at
		FROM accounts
		WHERE account_no = $1
		FOR UPDATE
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, accountNo).Scan(
		&acc.AccountNo,
		&acc.Name,
		&acc.BalancePaise,
		&acc.OpenedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound{AccountNo: accountNo}
		}
		r.logger.Error("Failed to lock account for update", "account_no", accountNo, "error", err)
		return nil, fmt.Errorf("failed to lock account for update: %w", err)
	}

	return &acc, nil
}

// UpdateBalance sets the account balance to an absolute value. The caller
// holds the row lock, so a plain SET is race-free.
func (r *AccountRepository) UpdateBalance(ctx context.Context, accountNo string, newBalance int64) error {
	query := `
		UPDATE accounts
		SET balance_paise = $1
		WHERE account_no = $2
	`

	result, err := r.querier.Exec(ctx, query, newBalance, accountNo)
	if err != nil {
		r.logger.Error("Failed to update account balance", "account_no", accountNo, "error", err)
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrNotFound{AccountNo: accountNo}
	}

	return nil
}
