package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

// SalesReport is the filtered order list with its footer totals.
type SalesReport struct {
	Orders  []models.Order          `json:"orders"`
	Summary accounting.SalesSummary `json:"summary"`
}

// SalesSummary loads the sales report; delivered orders are reported unless the
// filter asks for another status.
func (s *Service) SalesSummary(ctx context.Context, filter backend.SalesFilter) (SalesReport, error) {
	if filter.OrderStatus == "" {
		filter.OrderStatus = models.OrderDelivered
	}
	orders, err := s.backend.SalesReport(ctx, filter)
	if err != nil {
		return SalesReport{}, fmt.Errorf("load sales report: %w", err)
	}
	return SalesReport{Orders: orders, Summary: accounting.SummarizeSales(orders)}, nil
}

// MessReport is the list of subscriptions with totals.
type MessReport struct {
	Members    []models.MessMember    `json:"members"`
	Summary    accounting.MessSummary `json:"summary"`
	Incomplete bool                   `json:"incomplete"`
}

// MessSummary loads every mess subscription and totals it.
func (s *Service) MessSummary(ctx context.Context, query backend.Query) (MessReport, error) {
	members, incomplete, err := collect(ctx, s.logger, "list mess members", s.backend.MessMembers(query))
	if err != nil {
		return MessReport{}, fmt.Errorf("load mess members: %w", err)
	}
	return MessReport{Members: members, Summary: accounting.SummarizeMess(members), Incomplete: incomplete}, nil
}

// CreditReport lists credit customers and the total outstanding.
type CreditReport struct {
	Users      []models.CreditUser `json:"users"`
	TotalDue   models.Amount       `json:"total_due"`
	Active     int                 `json:"active"`
	Incomplete bool                `json:"incomplete"`
}

// CreditUsers loads every credit customer with their dues.
func (s *Service) CreditUsers(ctx context.Context) (CreditReport, error) {
	users, incomplete, err := collect(ctx, s.logger, "list credit users", s.backend.CreditUsers())
	if err != nil {
		return CreditReport{}, fmt.Errorf("load credit users: %w", err)
	}

	due := decimal.Zero
	active := 0
	for _, u := range users {
		if u.TotalDue.Malformed() {
			s.logger.Warn("credit user has malformed dues", zap.Int("credit_user", u.ID), zap.String("raw", u.TotalDue.Raw()))
		}
		due = due.Add(u.TotalDue.Decimal())
		if u.IsActive {
			active++
		}
	}

	return CreditReport{Users: users, TotalDue: models.NewAmount(due), Active: active, Incomplete: incomplete}, nil
}

// FloorTables is a floor with its tables.
type FloorTables struct {
	Floor  models.Floor         `json:"floor"`
	Tables []models.DiningTable `json:"tables"`
	Ready  int                  `json:"ready"`
	Seats  int                  `json:"seats"`
}

// DiningOverview lists every floor with its tables. A floor whose tables fail
// to load is reported with no tables.
func (s *Service) DiningOverview(ctx context.Context) ([]FloorTables, error) {
	floors, err := s.backend.Floors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load floors: %w", err)
	}

	overview := make([]FloorTables, 0, len(floors))
	for _, floor := range floors {
		tables, _, err := collect(ctx, s.logger, "list tables", s.backend.Tables(floor.ID))
		if err != nil {
			s.logger.Warn("tables unavailable", zap.Int("floor", floor.ID), zap.Error(err))
		}
		entry := FloorTables{Floor: floor, Tables: tables}
		for _, t := range tables {
			if t.IsReady {
				entry.Ready++
			}
			entry.Seats += t.SeatsCount
		}
		overview = append(overview, entry)
	}
	return overview, nil
}
