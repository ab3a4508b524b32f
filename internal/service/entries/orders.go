package entries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// BillRequest issues a bill for an order.
type BillRequest struct {
	OrderID     int    `json:"order_id" validate:"required,gt=0"`
	TotalAmount string `json:"total_amount" validate:"required,numeric"`
	Paid        bool   `json:"paid"`
}

// CreateBill issues a bill.
func (s *Service) CreateBill(ctx context.Context, req BillRequest) (models.Bill, error) {
	if err := s.check(req); err != nil {
		return models.Bill{}, err
	}
	total, err := positive("total_amount", req.TotalAmount)
	if err != nil {
		return models.Bill{}, err
	}

	bill, err := s.backend.CreateBill(ctx, models.BillRequest{OrderID: req.OrderID, TotalAmount: models.NewAmount(total), Paid: req.Paid})
	if err != nil {
		return models.Bill{}, fmt.Errorf("create bill for order %d: %w", req.OrderID, err)
	}
	return bill, nil
}

// CancelBill cancels the order behind a bill.
func (s *Service) CancelBill(ctx context.Context, billID int) error {
	if billID <= 0 {
		return invalid("id", "gt=0")
	}
	if err := s.backend.CancelBill(ctx, billID); err != nil {
		return fmt.Errorf("cancel bill %d: %w", billID, err)
	}
	s.logger.Info("bill cancelled", zap.Int("bill", billID))
	return nil
}

// DeliveryResult is the delivered order and its bill.
type DeliveryResult struct {
	Order models.Order `json:"order"`
	Bill  *models.Bill `json:"bill,omitempty"`
}

// DeliverOrder marks an order delivered and paid in cash, then bills it. When
// billing fails the order stays delivered and the failure is reported as partial.
func (s *Service) DeliverOrder(ctx context.Context, orderID int) (DeliveryResult, error) {
	if orderID <= 0 {
		return DeliveryResult{}, invalid("id", "gt=0")
	}

	order, err := s.backend.Order(ctx, orderID)
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if order.Status == models.OrderCancelled {
		return DeliveryResult{}, invalid("status", "cancelled orders cannot be delivered")
	}

	total := order.TotalAmount.Decimal()
	delivered, err := s.backend.UpdateOrderStatus(ctx, orderID, models.OrderStatusUpdate{
		Status:        models.OrderDelivered,
		PaymentMethod: models.PaymentCash,
		CashAmount:    models.NewAmount(total),
		BankAmount:    models.NewAmount(decimal.Zero),
	})
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("deliver order %d: %w", orderID, err)
	}
	result := DeliveryResult{Order: delivered}

	bill, err := s.backend.CreateBill(ctx, models.BillRequest{OrderID: orderID, TotalAmount: models.NewAmount(total), Paid: true})
	if err != nil {
		s.logger.Error("bill failed after order was delivered", zap.Int("order", orderID), zap.Error(err))
		return result, &PartialError{Applied: "order delivery", Failed: "bill", Result: result, Err: err}
	}
	result.Bill = &bill

	s.logger.Info("order delivered", zap.Int("order", orderID), zap.String("total", order.TotalAmount.String()))
	return result, nil
}
