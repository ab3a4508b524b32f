package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/service/entries"
	"github.com/mamadbah2/messledger/internal/service/reporting"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

const dateLayout = "2006-01-02"

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		verr    *entries.ValidationError
		partial *entries.PartialError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, entries.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &partial):
		logger.Error("partial posting", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   partial.Err.Error(),
			"partial": true,
			"applied": partial.Applied,
			"failed":  partial.Failed,
			"result":  partial.Result,
		})
	case errors.Is(err, reporting.ErrSnapshotsDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, reporting.ErrSnapshotUnavailable):
		logger.Error("snapshot unavailable", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": reporting.ErrSnapshotUnavailable.Error()})
	case backend.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case c.Request.Context().Err() != nil:
		logger.Warn("request cancelled", zap.String("op", op), zap.Error(err))
		c.Status(499)
	default:
		logger.Error("backend request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend request failed"})
	}
}

func badRequest(c *gin.Context, field, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": map[string]string{field: reason}})
}

// dateRange reads from_date and to_date. Missing bounds are left zero.
func dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from_date", &from}, {"to_date", &to}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, p.name, "datetime="+dateLayout)
			return time.Time{}, time.Time{}, false
		}
		*p.dst = parsed
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		badRequest(c, "to_date", "gtefield=from_date")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, name, "gt=0")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
