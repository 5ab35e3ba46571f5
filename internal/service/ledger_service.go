package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/domain/ledger"
	"github.com/paise-ledger/internal/platform/persistence"
)

// maxAccountNoAttempts bounds the generate/check/insert loop for account
// numbers. Exhaustion surfaces as a store error; with a 10^12 number space it
// only trips when the accounts table is pathologically full.
const maxAccountNoAttempts = 5

// defaultListLimit is used when a caller passes a non-positive limit.
const defaultListLimit = 20

type LedgerServiceImpl struct {
	txRunner    persistence.TxRunner
	accountRepo account.Repository
	ledgerRepo  ledger.Repository
	logger      *slog.Logger
}

func NewLedgerService(
	txRunner persistence.TxRunner,
	accountRepo account.Repository,
	ledgerRepo ledger.Repository,
	logger *slog.Logger,
) LedgerService {
	return &LedgerServiceImpl{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

// CreateAccount opens a new account. The generated number is collision-checked
// against the store inside the same transaction as the insert, so no
// concurrent caller can observe a duplicate.
func (s *LedgerServiceImpl) CreateAccount(ctx context.Context, name string) (*account.Account, error) {
	acc, err := account.NewAccount(name)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)

		for attempt := 1; ; attempt++ {
			taken, err := accounts.Exists(ctx, acc.AccountNo)
			if err != nil {
				return err
			}
			if !taken {
				break
			}
			if attempt >= maxAccountNoAttempts {
				return fmt.Errorf("no unused account number after %d attempts", maxAccountNoAttempts)
			}
			acc.AccountNo = account.NewAccountNo()
		}

		return accounts.Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_no", acc.AccountNo)
	return acc, nil
}

// GetAccount retrieves an account by its number.
func (s *LedgerServiceImpl) GetAccount(ctx context.Context, accountNo string) (*account.Account, error) {
	return s.accountRepo.GetByAccountNo(ctx, accountNo)
}

// Deposit credits the account and appends the matching DEPOSIT entry in one
// atomic unit.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error) {
	var newBalance int64

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)
		entries := s.ledgerRepo.WithTx(tx)

		acc, err := accounts.LockForUpdate(ctx, accountNo)
		if err != nil {
			return err
		}

		if err := acc.Deposit(amountPaise); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, accountNo, acc.BalancePaise); err != nil {
			return err
		}

		entry := &ledger.Entry{
			AccountNo:         accountNo,
			Type:              ledger.EntryTypeDeposit,
			AmountPaise:       amountPaise,
			BalanceAfterPaise: acc.BalancePaise,
			Note:              note,
		}
		if err := entries.Append(ctx, entry); err != nil {
			return err
		}

		newBalance = acc.BalancePaise
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Deposit applied", "account_no", accountNo, "amount_paise", amountPaise, "new_balance_paise", newBalance)
	return newBalance, nil
}

// Withdraw debits the account and appends the matching WITHDRAW entry in one
// atomic unit. Overdrafts are rejected before any write.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error) {
	var newBalance int64

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)
		entries := s.ledgerRepo.WithTx(tx)

		acc, err := accounts.LockForUpdate(ctx, accountNo)
		if err != nil {
			return err
		}

		if err := acc.Withdraw(amountPaise); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, accountNo, acc.BalancePaise); err != nil {
			return err
		}

		entry := &ledger.Entry{
			AccountNo:         accountNo,
			Type:              ledger.EntryTypeWithdraw,
			AmountPaise:       amountPaise,
			BalanceAfterPaise: acc.BalancePaise,
			Note:              note,
		}
		if err := entries.Append(ctx, entry); err != nil {
			return err
		}

		newBalance = acc.BalancePaise
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Withdrawal applied", "account_no", accountNo, "amount_paise", amountPaise, "new_balance_paise", newBalance)
	return newBalance, nil
}

// Transfer moves amountPaise from one account to another. Both balance
// updates and both ledger legs are a single indivisible unit: a failure
// partway leaves both accounts and both logs unchanged.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, fromNo, toNo string, amountPaise int64, note string) (int64, int64, error) {
	if fromNo == toNo {
		return 0, 0, ledger.ErrSameAccountTransfer
	}

	var fromBalance, toBalance int64

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)
		entries := s.ledgerRepo.WithTx(tx)

		// Lock rows in account-number order so two opposing transfers
		// cannot deadlock.
		first, second := fromNo, toNo
		if second < first {
			first, second = second, first
		}

		firstAcc, err := accounts.LockForUpdate(ctx, first)
		if err != nil {
			return err
		}
		secondAcc, err := accounts.LockForUpdate(ctx, second)
		if err != nil {
			return err
		}

		fromAcc, toAcc := firstAcc, secondAcc
		if fromAcc.AccountNo != fromNo {
			fromAcc, toAcc = secondAcc, firstAcc
		}

		if err := fromAcc.Withdraw(amountPaise); err != nil {
			return err
		}
		if err := toAcc.Deposit(amountPaise); err != nil {
			return err
		}

		if err := accounts.UpdateBalance(ctx, fromNo, fromAcc.BalancePaise); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, toNo, toAcc.BalancePaise); err != nil {
			return err
		}

		// Both legs of the transfer
		outEntry := &ledger.Entry{
			AccountNo:           fromNo,
			Type:                ledger.EntryTypeTransferOut,
			AmountPaise:         amountPaise,
			BalanceAfterPaise:   fromAcc.BalancePaise,
			CounterpartyAccount: toNo,
			Note:                note,
		}
		if err := entries.Append(ctx, outEntry); err != nil {
			return err
		}
		inEntry := &ledger.Entry{
			AccountNo:           toNo,
			Type:                ledger.EntryTypeTransferIn,
			AmountPaise:         amountPaise,
			BalanceAfterPaise:   toAcc.BalancePaise,
			CounterpartyAccount: fromNo,
			Note:                note,
		}
		if err := entries.Append(ctx, inEntry); err != nil {
			return err
		}

		fromBalance = fromAcc.BalancePaise
		toBalance = toAcc.BalancePaise
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.logger.Info("Transfer applied",
		"from_account", fromNo,
		"to_account", toNo,
		"amount_paise", amountPaise,
		"from_balance_paise", fromBalance,
		"to_balance_paise", toBalance,
	)
	return fromBalance, toBalance, nil
}

// ListTransactions returns the account's most recent ledger entries, newest
// first. Absence of history is not an error.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, accountNo string, limit int) ([]*ledger.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.ledgerRepo.ListByAccount(ctx, accountNo, limit)
}
