package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreatePaymentRequest struct {
	InvoiceID   uint            `json:"invoice_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	Notes       string          `json:"notes"`
}

// ListPaymentsHandler returns payment history, optionally for one invoice.
func ListPaymentsHandler(c *gin.Context) {
	query := config.DB.Order("payment_date desc")
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		query = query.Where("invoice_id = ?", invoiceID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// CreatePaymentHandler appends a payment ledger entry and applies it to the
// parent invoice.
func CreatePaymentHandler(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_date, use YYYY-MM-DD"})
		return
	}

	payment, err := Billing.RecordPayment(req.InvoiceID, req.Amount, paymentDate, req.Notes)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
