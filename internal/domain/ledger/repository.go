package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository manages ledger entry persistence
type Repository interface {
	// Append inserts one entry and fills in its store-assigned ID and
	// creation timestamp. Entries with an unknown type are rejected.
	Append(ctx context.Context, entry *Entry) error

	// ListByAccount returns up to limit most recent entries for the account,
	// ordered by ID descending. An unknown account yields an empty slice.
	ListByAccount(ctx context.Context, accountNo string, limit int) ([]*Entry, error)

	WithTx(tx pgx.Tx) Repository
}
