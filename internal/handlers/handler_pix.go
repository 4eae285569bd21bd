package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/dto"
	"github.com/SscSPs/pix_simulator/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pixHandler handles Pix transfer and refund requests.
type pixHandler struct {
	transferService portssvc.TransferSvc
	refundService   portssvc.RefundSvc
}

// RegisterPixRoutes registers the Pix operation routes.
func RegisterPixRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvc, refundService portssvc.RefundSvc) {
	h := &pixHandler{transferService: transferService, refundService: refundService}

	pix := rg.Group("/pix")
	{
		pix.POST("/transfer", h.transfer)
		pix.POST("/refund", h.refund)
	}
}

// transfer executes a Pix transfer. Every response, including failures, echoes the
// effective idempotency key so clients can retry safely.
func (h *pixHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	headerKey := c.GetHeader(IdempotencyKeyHeader)

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, headerKey)
		return
	}
	middleware.SetAccountID(c, req.SenderAccountID)

	simulateTimeout, _ := strconv.ParseBool(c.GetHeader(SimulateTimeoutHeader))
	cmd := req.ToCommand(headerKey, simulateTimeout)

	txn, key, err := h.transferService.Transfer(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, logger.With(slog.String("idempotency_key", key)), err, dto.NewErrorResponse(err).WithIdempotencyKey(key))
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Message:        dto.TransferSuccessMessage,
		Transaction:    dto.ToTransactionResponse(txn),
		IdempotencyKey: key,
	})
}

// refund reverses a recent transfer on behalf of its sender.
func (h *pixHandler) refund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "")
		return
	}
	middleware.SetAccountID(c, req.AccountID)

	refunded, err := h.refundService.Refund(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, logger, err, dto.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, dto.RefundResponse{
		Message:             dto.RefundSuccessMessage,
		RefundedTransaction: dto.ToTransactionResponse(refunded),
	})
}
