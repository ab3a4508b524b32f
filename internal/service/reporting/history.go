package reporting

import (
	"context"
	"fmt"

	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

// Listing is a collected backend list. Incomplete is set when pagination
// stopped early.
type Listing[T any] struct {
	Items      []T  `json:"items"`
	Count      int  `json:"count"`
	Incomplete bool `json:"incomplete,omitempty"`
}

func listing[T any](items []T, incomplete bool) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Items: items, Count: len(items), Incomplete: incomplete}
}

// Orders lists orders matching the backend filters in query. Long listings
// are fetched with the next page loading in the background.
func (s *Service) Orders(ctx context.Context, query backend.Query) (Listing[models.Order], error) {
	items, incomplete, err := collect(ctx, s.logger, "orders", s.backend.Orders(query, backend.WithPrefetch()))
	if err != nil {
		return Listing[models.Order]{}, fmt.Errorf("load orders: %w", err)
	}
	return listing(items, incomplete), nil
}

// Bills lists issued bills.
func (s *Service) Bills(ctx context.Context, query backend.Query) (Listing[models.Bill], error) {
	items, incomplete, err := collect(ctx, s.logger, "bills", s.backend.Bills(query, backend.WithPrefetch()))
	if err != nil {
		return Listing[models.Bill]{}, fmt.Errorf("load bills: %w", err)
	}
	return listing(items, incomplete), nil
}

// CreditHistory lists the payments received from one credit customer.
func (s *Service) CreditHistory(ctx context.Context, creditUserID int) (Listing[models.CreditTransaction], error) {
	items, incomplete, err := collect(ctx, s.logger, "credit history", s.backend.CreditTransactions(creditUserID))
	if err != nil {
		return Listing[models.CreditTransaction]{}, fmt.Errorf("load credit history for %d: %w", creditUserID, err)
	}
	return listing(items, incomplete), nil
}

// MessHistory lists the payments made against one mess subscription.
func (s *Service) MessHistory(ctx context.Context, messID int) (Listing[models.MessTransaction], error) {
	items, incomplete, err := collect(ctx, s.logger, "mess history", s.backend.MessTransactions(messID))
	if err != nil {
		return Listing[models.MessTransaction]{}, fmt.Errorf("load mess history for %d: %w", messID, err)
	}
	return listing(items, incomplete), nil
}

// SharePayments lists the payouts recorded against one share line.
func (s *Service) SharePayments(ctx context.Context, shareUserTransactionID int) (Listing[models.SharePayment], error) {
	items, err := s.backend.SharePayments(ctx, shareUserTransactionID)
	if err != nil {
		return Listing[models.SharePayment]{}, fmt.Errorf("load share payments for %d: %w", shareUserTransactionID, err)
	}
	return listing(items, false), nil
}
