// Package export renders an account's transaction log as a CSV statement.
// It is a thin formatting layer over the ledger core; it performs no store
// access of its own.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/paise-ledger/internal/domain/ledger"
	"github.com/paise-ledger/internal/money"
)

// timestampLayout is the normalized created_at rendering in statements.
const timestampLayout = "2006-01-02 15:04:05"

// csvHeader is the fixed statement header row.
var csvHeader = []string{"id", "type", "amount", "balance_after", "counterparty_account", "note", "created_at"}

// WriteCSV writes the given ledger entries as a CSV statement. Amounts are
// rendered with the currency symbol and two decimal places; zero timestamps
// are passed through as empty fields.
func WriteCSV(w io.Writer, entries []*ledger.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write statement header: %w", err)
	}

	for _, entry := range entries {
		createdAt := ""
		if !entry.CreatedAt.IsZero() {
			createdAt = entry.CreatedAt.Format(timestampLayout)
		}

		record := []string{
			strconv.FormatInt(entry.ID, 10),
			string(entry.Type),
			money.FormatAmount(entry.AmountPaise),
			money.FormatAmount(entry.BalanceAfterPaise),
			entry.CounterpartyAccount,
			entry.Note,
			createdAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write statement row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush statement: %w", err)
	}

	return nil
}

// FileName builds the statement file name for an account,
// e.g. transactions_123456789012_20240131_154500.csv.
func FileName(accountNo string, now time.Time) string {
	return fmt.Sprintf("transactions_%s_%s.csv", accountNo, now.Format("20060102_150405"))
}
