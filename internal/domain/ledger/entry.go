package ledger

import (
	"errors"
	"time"
)

// ErrSameAccountTransfer indicates a transfer whose source and destination are
// the same account. Rejected before any store access.
var ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

// EntryType defines the possible ledger entry kinds
type EntryType string

const (
	EntryTypeDeposit     EntryType = "DEPOSIT"
	EntryTypeWithdraw    EntryType = "WITHDRAW"
	EntryTypeTransferIn  EntryType = "TRANSFER_IN"
	EntryTypeTransferOut EntryType = "TRANSFER_OUT"
)

// Valid reports whether t is one of the fixed entry kinds. The store boundary
// rejects entries with any other type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeDeposit, EntryTypeWithdraw, EntryTypeTransferIn, EntryTypeTransferOut:
		return true
	}
	return false
}

// Entry is one immutable row of an account's transaction log. Entries are
// append-only: created exactly once per mutating operation, never updated or
// deleted. IDs are assigned by the store at insert time and define the natural
// ordering of the log.
type Entry struct {
	ID                   int64     `json:"id"`
	AccountNo            string    `json:"account_no"`
	Type                 EntryType `json:"type"`
	AmountPaise          int64     `json:"amount_paise"` // Positive magnitude; sign implied by Type
	BalanceAfterPaise    int64     `json:"balance_after_paise"`
	CounterpartyAccount  string    `json:"counterparty_account,omitempty"` // Set only for TRANSFER_IN/TRANSFER_OUT
	Note                 string    `json:"note,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// Signed returns the entry's amount with the sign implied by its type:
// positive for money flowing into the account, negative for money flowing out.
func (e *Entry) Signed() int64 {
	switch e.Type {
	case EntryTypeWithdraw, EntryTypeTransferOut:
		return -e.AmountPaise
	default:
		return e.AmountPaise
	}
}
