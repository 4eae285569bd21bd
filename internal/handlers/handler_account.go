package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/dto"
	"github.com/SscSPs/pix_simulator/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	account := rg.Group("/accounts/:accountID")
	{
		account.GET("/balance", h.getBalance)
		account.GET("/statement", h.getStatement)
	}
}

// getBalance returns the current balance of an account.
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	middleware.SetAccountID(c, accountID)

	logger = logger.With(slog.String("account_id", accountID))

	balance, err := h.accountService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, dto.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{Balance: balance})
}

// getStatement lists the transactions of an account, oldest first.
func (h *accountHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	middleware.SetAccountID(c, accountID)

	logger = logger.With(slog.String("account_id", accountID))

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "")
		return
	}

	statement, err := h.accountService.GetStatement(c.Request.Context(), accountID, params.ToDomain())
	if err != nil {
		respondError(c, logger, err, dto.NewErrorResponse(err))
		return
	}

	logger.Info("Statement retrieved", slog.Int("count", len(statement.Transactions)))
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
