// Package cli implements the interactive menu front end over the ledger core.
// It reads choices from stdin, parses amounts at the boundary, and prints
// business rejections without terminating the loop.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/paise-ledger/internal/config"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/domain/ledger"
	"github.com/paise-ledger/internal/export"
	"github.com/paise-ledger/internal/money"
	"github.com/paise-ledger/internal/service"
)

// exportListLimit caps how many entries a CSV export includes.
const exportListLimit = 1_000_000

// CLI drives the menu loop over the ledger core
type CLI struct {
	ledgerService service.LedgerService
	cfg           *config.Config
	logger        *slog.Logger
	in            *bufio.Scanner
	out           io.Writer
}

// New creates a CLI bound to stdin and stdout
func New(ledgerService service.LedgerService, cfg *config.Config, logger *slog.Logger) *CLI {
	return NewWithIO(ledgerService, cfg, logger, os.Stdin, os.Stdout)
}

// NewWithIO creates a CLI over the given input and output streams
func NewWithIO(ledgerService service.LedgerService, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		ledgerService: ledgerService,
		cfg:           cfg,
		logger:        logger,
		in:            bufio.NewScanner(in),
		out:           out,
	}
}

// Run prints the banner and processes menu choices until the user exits or
// input is exhausted.
func (c *CLI) Run(ctx context.Context) error {
	c.printHeader()

	for {
		c.printMenu()
		choice, err := c.prompt("Enter choice: ")
		if err != nil {
			// Input stream closed; treat like an exit.
			return nil
		}

		switch choice {
		case "1":
			c.createAccount(ctx)
		case "2":
			c.deposit(ctx)
		case "3":
			c.withdraw(ctx)
		case "4":
			c.transfer(ctx)
		case "5":
			c.listTransactions(ctx)
		case "6":
			c.exportCSV(ctx)
		case "0":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Please enter a valid choice (0-6).")
		}
	}
}

func (c *CLI) printHeader() {
	line := strings.Repeat("=", 68)
	fmt.Fprintln(c.out, line)
	fmt.Fprintln(c.out, centerText("BANK ACCOUNT MANAGEMENT SYSTEM", 68))
	fmt.Fprintln(c.out, line)
}

func (c *CLI) printMenu() {
	fmt.Fprintln(c.out, "\nChoose an option:")
	fmt.Fprintln(c.out, " 1) Create Account")
	fmt.Fprintln(c.out, " 2) Deposit")
	fmt.Fprintln(c.out, " 3) Withdraw")
	fmt.Fprintln(c.out, " 4) Transfer")
	fmt.Fprintln(c.out, " 5) View Transactions")
	fmt.Fprintln(c.out, " 6) Export Transactions to CSV")
	fmt.Fprintln(c.out, " 0) Exit")
}

func (c *CLI) prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *CLI) createAccount(ctx context.Context) {
	name, err := c.prompt("Enter account holder name: ")
	if err != nil {
		return
	}

	acc, err := c.ledgerService.CreateAccount(ctx, name)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Account created. Account No: %s\n", acc.AccountNo)
}

func (c *CLI) deposit(ctx context.Context) {
	accountNo, amountPaise, note, ok := c.promptMovement()
	if !ok {
		return
	}

	newBalance, err := c.ledgerService.Deposit(ctx, accountNo, amountPaise, note)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Deposited %s. New Balance: %s\n",
		money.FormatAmount(amountPaise), money.FormatAmount(newBalance))
}

func (c *CLI) withdraw(ctx context.Context) {
	accountNo, amountPaise, note, ok := c.promptMovement()
	if !ok {
		return
	}

	newBalance, err := c.ledgerService.Withdraw(ctx, accountNo, amountPaise, note)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Withdrew %s. New Balance: %s\n",
		money.FormatAmount(amountPaise), money.FormatAmount(newBalance))
}

func (c *CLI) transfer(ctx context.Context) {
	fromNo, err := c.prompt("From account no: ")
	if err != nil {
		return
	}
	toNo, err := c.prompt("To account no: ")
	if err != nil {
		return
	}
	amountRaw, err := c.prompt("Enter amount (e.g., 100 or 100.50): ")
	if err != nil {
		return
	}
	amountPaise, err := money.ParseAmount(amountRaw)
	if err != nil {
		c.printError(err)
		return
	}
	note, err := c.prompt("Optional note: ")
	if err != nil {
		return
	}

	fromBalance, toBalance, err := c.ledgerService.Transfer(ctx, fromNo, toNo, amountPaise, note)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Transferred %s from %s to %s.\n", money.FormatAmount(amountPaise), fromNo, toNo)
	fmt.Fprintf(c.out, "   New Balance (From): %s\n", money.FormatAmount(fromBalance))
	fmt.Fprintf(c.out, "   New Balance (To)  : %s\n", money.FormatAmount(toBalance))
}

func (c *CLI) listTransactions(ctx context.Context) {
	accountNo, err := c.prompt("Enter account no: ")
	if err != nil {
		return
	}

	defaultLimit := c.cfg.CLI.DefaultListLimit
	limitRaw, err := c.prompt(fmt.Sprintf("How many recent transactions? (default %d): ", defaultLimit))
	if err != nil {
		return
	}
	limit := defaultLimit
	if n, convErr := strconv.Atoi(limitRaw); convErr == nil && n > 0 {
		limit = n
	}

	entries, err := c.ledgerService.ListTransactions(ctx, accountNo, limit)
	if err != nil {
		c.printError(err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No transactions found.")
		return
	}

	line := strings.Repeat("-", 68)
	fmt.Fprintln(c.out, "\nRecent Transactions:")
	fmt.Fprintln(c.out, line)
	for _, entry := range entries {
		counterparty := ""
		if entry.CounterpartyAccount != "" {
			counterparty = " | With: " + entry.CounterpartyAccount
		}
		note := ""
		if entry.Note != "" {
			note = " | Note: " + entry.Note
		}
		fmt.Fprintf(c.out, "[%d] %s | %-12s | %-10s | Bal: %s%s%s\n",
			entry.ID,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.Type,
			money.FormatAmount(entry.AmountPaise),
			money.FormatAmount(entry.BalanceAfterPaise),
			counterparty,
			note,
		)
	}
	fmt.Fprintln(c.out, line)
}

func (c *CLI) exportCSV(ctx context.Context) {
	accountNo, err := c.prompt("Enter account no: ")
	if err != nil {
		return
	}

	if _, err := c.ledgerService.GetAccount(ctx, accountNo); err != nil {
		c.printError(err)
		return
	}

	entries, err := c.ledgerService.ListTransactions(ctx, accountNo, exportListLimit)
	if err != nil {
		c.printError(err)
		return
	}

	outPath := filepath.Join(c.cfg.Export.Dir, export.FileName(accountNo, time.Now()))
	file, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to export: %v\n", err)
		return
	}
	defer file.Close()

	if err := export.WriteCSV(file, entries); err != nil {
		fmt.Fprintf(c.out, "Failed to export: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Exported to %s\n", outPath)
}

// promptMovement collects the account number, amount and note shared by the
// deposit and withdraw flows. ok is false when input ended or the amount did
// not parse; parse failures are already printed.
func (c *CLI) promptMovement() (accountNo string, amountPaise int64, note string, ok bool) {
	accountNo, err := c.prompt("Enter account no: ")
	if err != nil {
		return "", 0, "", false
	}
	amountRaw, err := c.prompt("Enter amount (e.g., 100 or 100.50): ")
	if err != nil {
		return "", 0, "", false
	}
	amountPaise, err = money.ParseAmount(amountRaw)
	if err != nil {
		c.printError(err)
		return "", 0, "", false
	}
	note, err = c.prompt("Optional note: ")
	if err != nil {
		return "", 0, "", false
	}
	return accountNo, amountPaise, note, true
}

// printError renders business rejections as plain messages and logs anything
// unexpected before telling the user the operation failed.
func (c *CLI) printError(err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrNonPositiveAmount),
		errors.Is(err, account.ErrEmptyName),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrSameAccountTransfer),
		errors.Is(err, account.ErrNotFound{}):
		fmt.Fprintf(c.out, "Error: %v\n", err)
	default:
		c.logger.Error("Operation failed", "error", err)
		fmt.Fprintf(c.out, "Error: operation failed, please try again\n")
	}
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
