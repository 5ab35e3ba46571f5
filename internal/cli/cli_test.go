package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paise-ledger/internal/config"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/domain/ledger"
)

// MockLedgerService is a mock implementation of service.LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, name string) (*account.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountNo string) (*account.Account, error) {
	args := m.Called(ctx, accountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockLedgerService) Deposit(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error) {
	args := m.Called(ctx, accountNo, amountPaise, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, accountNo string, amountPaise int64, note string) (int64, error) {
	args := m.Called(ctx, accountNo, amountPaise, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromNo, toNo string, amountPaise int64, note string) (int64, int64, error) {
	args := m.Called(ctx, fromNo, toNo, amountPaise, note)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, accountNo string, limit int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, accountNo, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func newTestCLI(t *testing.T, svc *MockLedgerService, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Export: config.ExportConfig{Dir: t.TempDir()},
		CLI:    config.CLIConfig{DefaultListLimit: 20},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	out := &bytes.Buffer{}
	return NewWithIO(svc, cfg, logger, strings.NewReader(input), out), out
}

func TestRun_ExitImmediately(t *testing.T) {
	mockService := new(MockLedgerService)
	c, out := newTestCLI(t, mockService, "0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "BANK ACCOUNT MANAGEMENT SYSTEM")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_ExitOnEOF(t *testing.T) {
	mockService := new(MockLedgerService)
	c, _ := newTestCLI(t, mockService, "")

	require.NoError(t, c.Run(context.Background()))
}

func TestRun_InvalidChoice(t *testing.T) {
	mockService := new(MockLedgerService)
	c, out := newTestCLI(t, mockService, "9\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Please enter a valid choice (0-6).")
}

func TestRun_CreateAccount(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("CreateAccount", mock.Anything, "Asha Rao").Return(&account.Account{
		AccountNo: "123456789012",
		Name:      "Asha Rao",
	}, nil)

	c, out := newTestCLI(t, mockService, "1\nAsha Rao\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Account created. Account No: 123456789012")
	mockService.AssertExpectations(t)
}

func TestRun_CreateAccount_EmptyName(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("CreateAccount", mock.Anything, "").Return(nil, account.ErrEmptyName)

	c, out := newTestCLI(t, mockService, "1\n\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_Deposit(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("Deposit", mock.Anything, "123456789012", int64(10050), "salary").
		Return(int64(30050), nil)

	c, out := newTestCLI(t, mockService, "2\n123456789012\n100.50\nsalary\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Deposited ₹100.50. New Balance: ₹300.50")
	mockService.AssertExpectations(t)
}

func TestRun_Deposit_InvalidAmount(t *testing.T) {
	mockService := new(MockLedgerService)

	c, out := newTestCLI(t, mockService, "2\n123456789012\nabc\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error:")
	mockService.AssertNotCalled(t, "Deposit")
}

func TestRun_Withdraw_InsufficientFunds(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("Withdraw", mock.Anything, "123456789012", int64(999999900), "").
		Return(int64(0), account.ErrInsufficientFunds)

	c, out := newTestCLI(t, mockService, "3\n123456789012\n9999999\n\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "Goodbye!", "loop should continue after a rejection")
}

func TestRun_Transfer(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("Transfer", mock.Anything, "111111111111", "222222222222", int64(25000), "rent").
		Return(int64(75000), int64(125000), nil)

	c, out := newTestCLI(t, mockService, "4\n111111111111\n222222222222\n250\nrent\n0\n")

	require.NoError(t, c.Run(context.Background()))
	output := out.String()
	assert.Contains(t, output, "Transferred ₹250.00 from 111111111111 to 222222222222.")
	assert.Contains(t, output, "New Balance (From): ₹750.00")
	assert.Contains(t, output, "New Balance (To)  : ₹1250.00")
	mockService.AssertExpectations(t)
}

func TestRun_Transfer_SameAccount(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("Transfer", mock.Anything, "111111111111", "111111111111", int64(25000), "").
		Return(int64(0), int64(0), ledger.ErrSameAccountTransfer)

	c, out := newTestCLI(t, mockService, "4\n111111111111\n111111111111\n250\n\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: cannot transfer to the same account")
}

func TestRun_ListTransactions(t *testing.T) {
	mockService := new(MockLedgerService)
	entries := []*ledger.Entry{
		{
			ID:                2,
			AccountNo:         "123456789012",
			Type:              ledger.EntryTypeWithdraw,
			AmountPaise:       5000,
			BalanceAfterPaise: 5000,
			Note:              "groceries",
			CreatedAt:         time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:                1,
			AccountNo:         "123456789012",
			Type:              ledger.EntryTypeDeposit,
			AmountPaise:       10000,
			BalanceAfterPaise: 10000,
			CreatedAt:         time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	mockService.On("ListTransactions", mock.Anything, "123456789012", 20).Return(entries, nil)

	c, out := newTestCLI(t, mockService, "5\n123456789012\n\n0\n")

	require.NoError(t, c.Run(context.Background()))
	output := out.String()
	assert.Contains(t, output, "Recent Transactions:")
	assert.Contains(t, output, "[2] 2024-03-02 09:30:00 | WITHDRAW")
	assert.Contains(t, output, "Note: groceries")
	assert.Contains(t, output, "[1] 2024-03-01 09:00:00 | DEPOSIT")
	mockService.AssertExpectations(t)
}

func TestRun_ListTransactions_CustomLimit(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("ListTransactions", mock.Anything, "123456789012", 5).
		Return([]*ledger.Entry{}, nil)

	c, out := newTestCLI(t, mockService, "5\n123456789012\n5\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "No transactions found.")
	mockService.AssertExpectations(t)
}

func TestRun_ExportCSV(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("GetAccount", mock.Anything, "123456789012").Return(&account.Account{
		AccountNo: "123456789012",
		Name:      "Asha Rao",
	}, nil)
	mockService.On("ListTransactions", mock.Anything, "123456789012", exportListLimit).
		Return([]*ledger.Entry{
			{
				ID:                1,
				AccountNo:         "123456789012",
				Type:              ledger.EntryTypeDeposit,
				AmountPaise:       10000,
				BalanceAfterPaise: 10000,
				CreatedAt:         time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		}, nil)

	c, out := newTestCLI(t, mockService, "6\n123456789012\n0\n")

	require.NoError(t, c.Run(context.Background()))
	output := out.String()
	assert.Contains(t, output, "Exported to ")

	matches, err := filepath.Glob(filepath.Join(c.cfg.Export.Dir, "transactions_123456789012_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "id,type,amount,balance_after,counterparty_account,note,created_at")
	assert.Contains(t, string(content), "1,DEPOSIT,₹100.00,₹100.00,,,2024-03-01 09:00:00")
}

func TestRun_ExportCSV_UnknownAccount(t *testing.T) {
	mockService := new(MockLedgerService)
	mockService.On("GetAccount", mock.Anything, "000000000000").
		Return(nil, account.ErrNotFound{AccountNo: "000000000000"})

	c, out := newTestCLI(t, mockService, "6\n000000000000\n0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: account not found: 000000000000")
	mockService.AssertNotCalled(t, "ListTransactions")
}
