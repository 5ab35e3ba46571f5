package account

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

// Common errors
var (
	ErrEmptyName         = errors.New("account name cannot be empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// AccountNoLength is the number of digits in a generated account number.
const AccountNoLength = 12

// Account represents a ledger account. The balance is a cached projection of
// the account's transaction log; both are always updated together.
type Account struct {
	AccountNo    string    `json:"account_no"`
	Name         string    `json:"name"`
	BalancePaise int64     `json:"balance_paise"` // Stored in paise/minor units
	OpenedAt     time.Time `json:"opened_at"`
}

// NewAccount creates a new account with a freshly generated account number and
// a zero balance. The display name is trimmed and must be non-empty.
func NewAccount(name string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Account{
		AccountNo:    NewAccountNo(),
		Name:         name,
		BalancePaise: 0,
		OpenedAt:     time.Now(),
	}, nil
}

// NewAccountNo generates a candidate 12-digit account number. Uniqueness is
// not guaranteed here; callers must collision-check against the store before
// inserting.
func NewAccountNo() string {
	var b strings.Builder
	b.Grow(AccountNoLength)
	for i := 0; i < AccountNoLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic("account: reading random source: " + err.Error())
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}

// Deposit adds the specified amount to the account balance.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	a.BalancePaise += amount
	return nil
}

// Withdraw subtracts the specified amount from the account balance. The
// balance never goes negative.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if a.BalancePaise < amount {
		return ErrInsufficientFunds
	}

	a.BalancePaise -= amount
	return nil
}

// CanWithdraw checks if the account has sufficient funds for a withdrawal.
func (a *Account) CanWithdraw(amount int64) bool {
	return a.BalancePaise >= amount
}
