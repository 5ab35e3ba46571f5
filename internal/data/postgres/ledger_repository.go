package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/paise-ledger/internal/domain/ledger"
	"github.com/paise-ledger/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL.
// The transactions table is append-only; no update or delete path exists.
type LedgerRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository backed by the
// connection pool.
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction.
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Append inserts one ledger entry, filling in the store-assigned ID and
// creation timestamp. The entry type is validated at this boundary.
func (r *LedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	if !entry.Type.Valid() {
		return fmt.Errorf("invalid ledger entry type: %q", entry.Type)
	}

	query := `
		INSERT INTO transactions (account_no, type, amount_paise, balance_after_paise, counterparty_account, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.querier.QueryRow(ctx, query,
		entry.AccountNo,
		string(entry.Type),
		entry.AmountPaise,
		entry.BalanceAfterPaise,
		nullIfEmpty(entry.CounterpartyAccount),
		nullIfEmpty(entry.Note),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to append ledger entry", "account_no", entry.AccountNo, "type", entry.Type, "error", err)
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

// ListByAccount returns up to limit most recent entries for the account,
// ordered by id descending. An unknown account yields an empty slice.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountNo string, limit int) ([]*ledger.Entry, error) {
	query := `
		SELECT id, account_no, type, amount_paise, balance_after_paise, counterparty_account, note, created_at
		FROM transactions
		WHERE account_no = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.querier.Query(ctx, query, accountNo, limit)
	if err != nil {
		r.logger.Error("Failed to list ledger entries", "account_no", accountNo, "error", err)
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*ledger.Entry, 0)
	for rows.Next() {
		var (
			entry        ledger.Entry
			counterparty *string
			note         *string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountNo,
			&entry.Type,
			&entry.AmountPaise,
			&entry.BalanceAfterPaise,
			&counterparty,
			&note,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		if counterparty != nil {
			entry.CounterpartyAccount = *counterparty
		}
		if note != nil {
			entry.Note = *note
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}

	return entries, nil
}

// nullIfEmpty maps "" to SQL NULL for nullable text columns.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
