package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/domain/ledger"
	"github.com/paise-ledger/internal/export"
	"github.com/paise-ledger/internal/money"
	"github.com/paise-ledger/internal/service"
)

// statementLimit caps how many entries a downloaded statement includes.
const statementLimit = 1_000_000

// TransactionHandler handles money movement and history HTTP requests
type TransactionHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService service.LedgerService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Deposit handles POST /api/v1/accounts/:account_no/deposit
func (h *TransactionHandler) Deposit(c *gin.Context) {
	accountNo := c.Param("account_no")

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	amountPaise, err := money.ParseAmount(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	newBalance, err := h.ledgerService.Deposit(c.Request.Context(), accountNo, amountPaise, req.Note)
	if err != nil {
		h.respondMovementError(c, accountNo, "deposit", err)
		return
	}

	RespondOK(c, &BalanceResponse{
		AccountNo:       accountNo,
		NewBalance:      money.FormatAmount(newBalance),
		NewBalancePaise: newBalance,
	})
}

// Withdraw handles POST /api/v1/accounts/:account_no/withdraw
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	accountNo := c.Param("account_no")

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	amountPaise, err := money.ParseAmount(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	newBalance, err := h.ledgerService.Withdraw(c.Request.Context(), accountNo, amountPaise, req.Note)
	if err != nil {
		h.respondMovementError(c, accountNo, "withdrawal", err)
		return
	}

	RespondOK(c, &BalanceResponse{
		AccountNo:       accountNo,
		NewBalance:      money.FormatAmount(newBalance),
		NewBalancePaise: newBalance,
	})
}

// Transfer handles POST /api/v1/transfers
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	amountPaise, err := money.ParseAmount(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	fromBalance, toBalance, err := h.ledgerService.Transfer(
		c.Request.Context(), req.FromAccount, req.ToAccount, amountPaise, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrSameAccountTransfer):
			RespondBadRequest(c, "Cannot transfer to the same account")
		case errors.Is(err, account.ErrNotFound{AccountNo: req.FromAccount}):
			RespondNotFound(c, "Account "+req.FromAccount+" not found")
		case errors.Is(err, account.ErrNotFound{AccountNo: req.ToAccount}):
			RespondNotFound(c, "Account "+req.ToAccount+" not found")
		case errors.Is(err, account.ErrInsufficientFunds):
			RespondConflict(c, "Insufficient funds in account "+req.FromAccount)
		default:
			h.logger.Error("Transfer failed",
				"from_account", req.FromAccount,
				"to_account", req.ToAccount,
				"error", err,
			)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, &TransferResponse{
		FromAccount:      req.FromAccount,
		ToAccount:        req.ToAccount,
		Amount:           money.FormatAmount(amountPaise),
		FromBalance:      money.FormatAmount(fromBalance),
		FromBalancePaise: fromBalance,
		ToBalance:        money.FormatAmount(toBalance),
		ToBalancePaise:   toBalance,
	})
}

// List handles GET /api/v1/accounts/:account_no/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	accountNo := c.Param("account_no")

	var params ListQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	entries, err := h.ledgerService.ListTransactions(c.Request.Context(), accountNo, params.Limit)
	if err != nil {
		h.logger.Error("Failed to list transactions", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	resp := &TransactionListResponse{Transactions: make([]EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Transactions = append(resp.Transactions, toEntryResponse(entry))
	}

	RespondOK(c, resp)
}

// Statement handles GET /api/v1/accounts/:account_no/statement. It streams the
// full transaction history as a CSV attachment.
func (h *TransactionHandler) Statement(c *gin.Context) {
	accountNo := c.Param("account_no")

	if _, err := h.ledgerService.GetAccount(c.Request.Context(), accountNo); err != nil {
		if errors.Is(err, account.ErrNotFound{}) {
			RespondNotFound(c, "Account "+accountNo+" not found")
			return
		}
		h.logger.Error("Failed to get account for statement", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	entries, err := h.ledgerService.ListTransactions(c.Request.Context(), accountNo, statementLimit)
	if err != nil {
		h.logger.Error("Failed to build statement", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, entries); err != nil {
		h.logger.Error("Failed to render statement", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	fileName := export.FileName(accountNo, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *TransactionHandler) respondMovementError(c *gin.Context, accountNo, operation string, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound{}):
		RespondNotFound(c, "Account "+accountNo+" not found")
	case errors.Is(err, account.ErrInsufficientFunds):
		RespondConflict(c, "Insufficient funds in account "+accountNo)
	default:
		h.logger.Error("Movement failed", "operation", operation, "account_no", accountNo, "error", err)
		RespondInternalError(c)
	}
}

func toEntryResponse(entry *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:                  entry.ID,
		Type:                string(entry.Type),
		Amount:              money.FormatAmount(entry.AmountPaise),
		AmountPaise:         entry.AmountPaise,
		BalanceAfter:        money.FormatAmount(entry.BalanceAfterPaise),
		BalanceAfterPaise:   entry.BalanceAfterPaise,
		CounterpartyAccount: entry.CounterpartyAccount,
		Note:                entry.Note,
		CreatedAt:           entry.CreatedAt.Format(time.RFC3339),
	}
}
