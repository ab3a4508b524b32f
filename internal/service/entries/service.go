package entries

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

var (
	// ErrValidation marks input that was rejected before anything was posted.
	ErrValidation = errors.New("validation failed")
	// ErrPartialPosting marks a flow whose first step was applied by the
	// backend while a later step failed. Nothing is rolled back.
	ErrPartialPosting = errors.New("posting partially applied")
)

const dateFormat = "2006-01-02"

// Backend is the subset of the POS backend client used to post entries.
type Backend interface {
	PostPayInOut(ctx context.Context, posting models.PayInOutPosting) ([]models.Transaction, error)
	PostSalesEntry(ctx context.Context, posting models.SalesEntryPosting) ([]models.Transaction, error)
	CreateCashSheets(ctx context.Context, sheets ...models.CashCountSheet) ([]models.CashCountSheet, error)
	CreditUser(ctx context.Context, id int) (models.CreditUser, error)
	CreateCreditTransaction(ctx context.Context, txn models.CreditTransaction) (models.CreditTransaction, error)
	MessMember(ctx context.Context, id int) (models.MessMember, error)
	Menus(messTypeID int, opts ...backend.PagerOption) *backend.Pager[models.Menu]
	RenewMess(ctx context.Context, id int, renewal models.MessRenewal) (models.MessMember, error)
	ShareUsers(opts ...backend.PagerOption) *backend.Pager[models.ShareUser]
	CreateProfitLossShare(ctx context.Context, txn models.ProfitLossShareTransaction) (models.ProfitLossShareTransaction, error)
	ShareUserTransaction(ctx context.Context, id int) (models.ShareUserTransaction, error)
	UpdateShareUserTransaction(ctx context.Context, id int, update models.ShareUserTransactionUpdate) (models.ShareUserTransaction, error)
	CreateSharePayment(ctx context.Context, payment models.SharePayment) (models.SharePayment, error)
	Order(ctx context.Context, id int) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, update models.OrderStatusUpdate) (models.Order, error)
	CreateBill(ctx context.Context, req models.BillRequest) (models.Bill, error)
	CancelBill(ctx context.Context, billID int) error
}

// Service validates entry requests and posts them to the backend.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs an entries service.
func NewService(client Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		backend:  client,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidationError lists the rejected fields with the rule each one failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		out.Fields[fieldPath(fe.Namespace())] = reason
	}
	return out
}

// fieldPath drops the struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// positive parses an already validated decimal string and requires it to be
// greater than zero.
func positive(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, invalid(field, "decimal")
	}
	if !d.IsPositive() {
		return decimal.Zero, invalid(field, "gt=0")
	}
	return d, nil
}

// optional parses a decimal that may be blank.
func optional(field, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, invalid(field, "decimal")
	}
	if d.IsNegative() {
		return decimal.Zero, invalid(field, "gte=0")
	}
	return d, nil
}

// PartialError reports which step of a multi-step flow was applied and which failed.
type PartialError struct {
	Applied string
	Failed  string
	Result  any
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s applied but %s failed: %v", e.Applied, e.Failed, e.Err)
}

func (e *PartialError) Is(target error) bool {
	return target == ErrPartialPosting
}

func (e *PartialError) Unwrap() error {
	return e.Err
}
