package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/service/entries"
)

// EntryService is the write side served by EntryHandler.
type EntryService interface {
	PayIn(ctx context.Context, req entries.VoucherRequest) (entries.VoucherResult, error)
	PayOut(ctx context.Context, req entries.VoucherRequest) (entries.VoucherResult, error)
	SalesEntry(ctx context.Context, req entries.SalesEntryRequest) ([]models.Transaction, error)
	PreviewCashCount(rows []accounting.CashCountRow) (accounting.CashCount, error)
	CreditPayment(ctx context.Context, req entries.CreditPaymentRequest) (models.CreditTransaction, error)
	RenewMess(ctx context.Context, messID int, req entries.RenewMessRequest) (models.MessMember, error)
	DistributeProfitLoss(ctx context.Context, req entries.DistributionRequest) (entries.DistributionResult, error)
	EditShareUserTransaction(ctx context.Context, id int, req entries.ShareLineEdit) (models.ShareUserTransaction, error)
	RecordSharePayment(ctx context.Context, req entries.SharePaymentRequest) (models.SharePayment, error)
	CreateBill(ctx context.Context, req entries.BillRequest) (models.Bill, error)
	CancelBill(ctx context.Context, billID int) error
	DeliverOrder(ctx context.Context, orderID int) (entries.DeliveryResult, error)
}

// EntryHandler serves posting endpoints.
type EntryHandler struct {
	svc    EntryService
	logger *zap.Logger
}

// NewEntryHandler constructs the entry handler.
func NewEntryHandler(svc EntryService, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{svc: svc, logger: logger}
}

func (h *EntryHandler) PayIn(c *gin.Context) {
	var req entries.VoucherRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	result, err := h.svc.PayIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "pay in", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *EntryHandler) PayOut(c *gin.Context) {
	var req entries.VoucherRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	result, err := h.svc.PayOut(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "pay out", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *EntryHandler) SalesEntry(c *gin.Context) {
	var req entries.SalesEntryRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	txns, err := h.svc.SalesEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "sales entry", err)
		return
	}
	c.JSON(http.StatusCreated, txns)
}

// PreviewCashCount prices denominations without posting.
func (h *EntryHandler) PreviewCashCount(c *gin.Context) {
	var rows []accounting.CashCountRow
	if !bindJSON(c, h.logger, &rows) {
		return
	}
	count, err := h.svc.PreviewCashCount(rows)
	if err != nil {
		respondError(c, h.logger, "cash count preview", err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *EntryHandler) CreditPayment(c *gin.Context) {
	var req entries.CreditPaymentRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	txn, err := h.svc.CreditPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "credit payment", err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (h *EntryHandler) RenewMess(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entries.RenewMessRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	member, err := h.svc.RenewMess(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "mess renewal", err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *EntryHandler) DistributeProfitLoss(c *gin.Context) {
	var req entries.DistributionRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	result, err := h.svc.DistributeProfitLoss(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "profit/loss distribution", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *EntryHandler) EditShareUserTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entries.ShareLineEdit
	if !bindJSON(c, h.logger, &req) {
		return
	}
	line, err := h.svc.EditShareUserTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "share line edit", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *EntryHandler) RecordSharePayment(c *gin.Context) {
	var req entries.SharePaymentRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	payment, err := h.svc.RecordSharePayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "share payment", err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *EntryHandler) CreateBill(c *gin.Context) {
	var req entries.BillRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	bill, err := h.svc.CreateBill(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "create bill", err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *EntryHandler) CancelBill(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CancelBill(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "cancel bill", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeliverOrder marks an order delivered and bills it.
func (h *EntryHandler) DeliverOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.DeliverOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "deliver order", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
