package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateExpenseRequest struct {
	LocationID  *uint                  `json:"location_id"`
	Category    models.ExpenseCategory `json:"category" binding:"omitempty,oneof=repair utility maintenance other"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	ExpenseDate string                 `json:"expense_date" binding:"required"`
	Notes       string                 `json:"notes"`
}

type UpdateExpenseRequest struct {
	LocationID  *uint                   `json:"location_id"`
	Category    *models.ExpenseCategory `json:"category" binding:"omitempty,oneof=repair utility maintenance other"`
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	ExpenseDate *string                 `json:"expense_date"`
	Notes       *string                 `json:"notes"`
}

// ListExpensesHandler returns expenses filtered by location, category and
// period, newest first.
func ListExpensesHandler(c *gin.Context) {
	query := config.DB.Order("expense_date desc")
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	month, year := c.Query("month"), c.Query("year")
	if month != "" && year != "" {
		query = query.Where(
			"EXTRACT(MONTH FROM expense_date) = ? AND EXTRACT(YEAR FROM expense_date) = ?",
			month, year)
	} else if year != "" {
		query = query.Where("EXTRACT(YEAR FROM expense_date) = ?", year)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpenseHandler records a cost, optionally tied to a location.
func CreateExpenseHandler(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
		return
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense_date, use YYYY-MM-DD"})
		return
	}

	if req.LocationID != nil {
		var count int64
		config.DB.Model(&models.Location{}).Where("id = ?", *req.LocationID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
	}

	category := req.Category
	if category == "" {
		category = models.ExpenseOther
	}

	expense := models.Expense{
		LocationID:  req.LocationID,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Notes:       req.Notes,
	}
	if err := config.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenseHandler returns one expense.
func GetExpenseHandler(c *gin.Context) {
	var expense models.Expense
	if err := config.DB.First(&expense, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// UpdateExpenseHandler applies a partial update to an expense.
func UpdateExpenseHandler(c *gin.Context) {
	var expense models.Expense
	if err := config.DB.First(&expense, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.LocationID != nil {
		var count int64
		config.DB.Model(&models.Location{}).Where("id = ?", *req.LocationID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		expense.LocationID = req.LocationID
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
			return
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		expenseDate, err := parseDate(*req.ExpenseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense_date, use YYYY-MM-DD"})
			return
		}
		expense.ExpenseDate = expenseDate
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpenseHandler removes an expense record.
func DeleteExpenseHandler(c *gin.Context) {
	var expense models.Expense
	if err := config.DB.First(&expense, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	if err := config.DB.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	c.Status(http.StatusNoContent)
}
