package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paise-ledger/internal/domain/account"
	"github.com/paise-ledger/internal/money"
	"github.com/paise-ledger/internal/service"
)

// AccountHandler handles account related HTTP requests
type AccountHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerService service.LedgerService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	acc, err := h.ledgerService.CreateAccount(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, account.ErrEmptyName) {
			RespondBadRequest(c, "Account holder name cannot be empty")
			return
		}
		h.logger.Error("Failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, toAccountResponse(acc))
}

// GetByAccountNo handles GET /api/v1/accounts/:account_no
func (h *AccountHandler) GetByAccountNo(c *gin.Context) {
	accountNo := c.Param("account_no")

	acc, err := h.ledgerService.GetAccount(c.Request.Context(), accountNo)
	if err != nil {
		if errors.Is(err, account.ErrNotFound{}) {
			RespondNotFound(c, "Account "+accountNo+" not found")
			return
		}
		h.logger.Error("Failed to get account", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, toAccountResponse(acc))
}

func toAccountResponse(acc *account.Account) *AccountResponse {
	return &AccountResponse{
		AccountNo:    acc.AccountNo,
		Name:         acc.Name,
		Balance:      money.FormatAmount(acc.BalancePaise),
		BalancePaise: acc.BalancePaise,
		OpenedAt:     acc.OpenedAt.Format(time.RFC3339),
	}
}
