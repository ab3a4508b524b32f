package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/server/handlers"
)

// New wires the Gin engine with the report and entry routes.
func New(reports *handlers.ReportHandler, entries *handlers.EntryHandler, rate string, logger *zap.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(rateLimit(limiter.New(memory.NewStore(), limit), logger))

	api.GET("/ledgers", reports.Ledgers)

	rep := api.Group("/reports")
	{
		rep.GET("/ledger", reports.LedgerReport)
		rep.GET("/day-book", reports.DayBook)
		rep.GET("/income-statement", reports.IncomeStatement)
		rep.GET("/balance-sheet", reports.BalanceSheet)
		rep.GET("/sales", reports.Sales)
		rep.GET("/mess", reports.Mess)
		rep.GET("/credit-users", reports.CreditUsers)
		rep.GET("/credit-users/:id/transactions", reports.CreditHistory)
		rep.GET("/mess/:id/transactions", reports.MessHistory)
		rep.GET("/orders", reports.Orders)
		rep.GET("/bills", reports.Bills)
		rep.GET("/share-payments/:id", reports.SharePayments)
		rep.GET("/dining", reports.Dining)
		rep.GET("/shares", reports.Shares)
		rep.GET("/shares/:userID", reports.IndividualShares)
		rep.POST("/snapshot", reports.Snapshot)
		rep.GET("/snapshots", reports.Snapshots)
	}

	ent := api.Group("/entries")
	{
		ent.POST("/pay-in", entries.PayIn)
		ent.POST("/pay-out", entries.PayOut)
		ent.POST("/sales", entries.SalesEntry)
		ent.POST("/cash-count/preview", entries.PreviewCashCount)
		ent.POST("/credit-payments", entries.CreditPayment)
		ent.POST("/mess-renewals/:id", entries.RenewMess)
		ent.POST("/profit-loss-shares", entries.DistributeProfitLoss)
		ent.PATCH("/share-user-transactions/:id", entries.EditShareUserTransaction)
		ent.POST("/share-payments", entries.RecordSharePayment)
	}

	api.POST("/bills", entries.CreateBill)
	api.POST("/bills/:id/cancel", entries.CancelBill)
	api.POST("/orders/:id/deliver", entries.DeliverOrder)

	logger.Info("router initialized")
	return r, nil
}
