package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/internal/billing"
	"github.com/LoAnTTM/RentManager/models"
)

type GenerateInvoicesRequest struct {
	Month      int   `json:"month" binding:"required,min=1,max=12"`
	Year       int   `json:"year" binding:"required,min=2000"`
	LocationID *uint `json:"location_id"`
}

type UpdateInvoiceRequest struct {
	RoomFee        *decimal.Decimal `json:"room_fee"`
	ElectricFee    *decimal.Decimal `json:"electric_fee"`
	WaterFee       *decimal.Decimal `json:"water_fee"`
	GarbageFee     *decimal.Decimal `json:"garbage_fee"`
	WifiFee        *decimal.Decimal `json:"wifi_fee"`
	TVFee          *decimal.Decimal `json:"tv_fee"`
	LaundryFee     *decimal.Decimal `json:"laundry_fee"`
	OtherFee       *decimal.Decimal `json:"other_fee"`
	OtherFeeNote   *string          `json:"other_fee_note"`
	PreviousDebt   *decimal.Decimal `json:"previous_debt"`
	PreviousCredit *decimal.Decimal `json:"previous_credit"`
	PaymentDate    *string          `json:"payment_date"`
	Notes          *string          `json:"notes"`
}

// ListInvoicesHandler returns invoices filtered by period, location and
// status, newest period first, paginated.
func ListInvoicesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Invoice{}).Preload("Room").
		Order("invoices.year desc, invoices.month desc")

	if month := c.Query("month"); month != "" {
		query = query.Where("invoices.month = ?", month)
	}
	if year := c.Query("year"); year != "" {
		query = query.Where("invoices.year = ?", year)
	}
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Joins("JOIN rooms ON rooms.id = invoices.room_id").
			Where("rooms.location_id = ?", locationID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("invoices.status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invoices"})
		return
	}

	var invoices []models.Invoice
	if err := query.Scopes(Paginate(c)).Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, invoices, totalRows))
}

// GenerateInvoicesHandler runs monthly invoice generation for all occupied
// rooms, optionally within one location.
func GenerateInvoicesHandler(c *gin.Context) {
	var req GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := Billing.GeneratePeriodInvoices(req.Month, req.Year, req.LocationID)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetInvoiceHandler returns one invoice with its room.
func GetInvoiceHandler(c *gin.Context) {
	var invoice models.Invoice
	err := config.DB.Preload("Room").Preload("Room.Location").Preload("Payments").
		First(&invoice, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceHandler applies a typed partial update and recomputes the
// invoice's total, balances and status.
func UpdateInvoiceHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	upd := billing.InvoiceUpdate{
		RoomFee:        req.RoomFee,
		ElectricFee:    req.ElectricFee,
		WaterFee:       req.WaterFee,
		GarbageFee:     req.GarbageFee,
		WifiFee:        req.WifiFee,
		TVFee:          req.TVFee,
		LaundryFee:     req.LaundryFee,
		OtherFee:       req.OtherFee,
		OtherFeeNote:   req.OtherFeeNote,
		PreviousDebt:   req.PreviousDebt,
		PreviousCredit: req.PreviousCredit,
		Notes:          req.Notes,
	}
	if req.PaymentDate != nil {
		paymentDate, err := parseDate(*req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_date, use YYYY-MM-DD"})
			return
		}
		upd.PaymentDate = &paymentDate
	}

	invoice, err := Billing.UpdateInvoice(uint(id), upd)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateAbsenceHandler sets the invoice's absent days and reprices the
// absence deduction.
func UpdateAbsenceHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	absentDays, err := strconv.Atoi(c.Query("absent_days"))
	if err != nil || absentDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "absent_days must be a non-negative integer"})
		return
	}

	invoice, err := Billing.UpdateAbsence(uint(id), absentDays)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// PayInvoiceHandler collects money against an invoice. Without an amount
// query parameter the invoice is paid in full.
func PayInvoiceHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	var amount *decimal.Decimal
	if amountStr := c.Query("amount"); amountStr != "" {
		parsed, err := decimal.NewFromString(amountStr)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a non-negative number"})
			return
		}
		amount = &parsed
	}

	invoice, err := Billing.Pay(uint(id), amount)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
