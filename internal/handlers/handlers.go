package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LoAnTTM/RentManager/internal/billing"
)

// Billing is the billing core shared by all handlers, wired up in main.
var Billing *billing.Service

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// respondBillingError translates billing core errors into HTTP responses.
func respondBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, billing.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrDuplicatePeriod), errors.Is(err, billing.ErrInvalidReading):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("Billing operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
