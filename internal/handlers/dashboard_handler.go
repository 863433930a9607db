package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

// DashboardStats is the landing-page aggregate for the current month.
type DashboardStats struct {
	TotalRooms            int64           `json:"total_rooms"`
	OccupiedRooms         int64           `json:"occupied_rooms"`
	VacantRooms           int64           `json:"vacant_rooms"`
	TotalTenants          int64           `json:"total_tenants"`
	TotalIncomeThisMonth  decimal.Decimal `json:"total_income_this_month"`
	TotalPaidThisMonth    decimal.Decimal `json:"total_paid_this_month"`
	TotalUnpaidThisMonth  decimal.Decimal `json:"total_unpaid_this_month"`
	TotalExpenseThisMonth decimal.Decimal `json:"total_expense_this_month"`
}

// UnpaidInvoice is one outstanding invoice row in the monthly report.
type UnpaidInvoice struct {
	ID           uint            `json:"id"`
	RoomCode     string          `json:"room_code"`
	LocationName string          `json:"location_name"`
	Total        decimal.Decimal `json:"total"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// MonthlyReport summarizes one billing period.
type MonthlyReport struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	NetIncome      decimal.Decimal `json:"net_income"`
	UnpaidInvoices []UnpaidInvoice `json:"unpaid_invoices"`
}

const dashboardCacheKey = "dashboard:stats"

func sumExpenses(month, year int) decimal.Decimal {
	var total decimal.Decimal
	config.DB.Model(&models.Expense{}).
		Where("EXTRACT(MONTH FROM expense_date) = ? AND EXTRACT(YEAR FROM expense_date) = ?", month, year).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	return total
}

// GetDashboardStatsHandler returns the current-month overview. The result is
// cached in Redis for a minute when a cache is configured.
func GetDashboardStatsHandler(c *gin.Context) {
	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, dashboardCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	var stats DashboardStats
	config.DB.Model(&models.Room{}).Count(&stats.TotalRooms)
	config.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied).Count(&stats.OccupiedRooms)
	stats.VacantRooms = stats.TotalRooms - stats.OccupiedRooms
	config.DB.Model(&models.Tenant{}).Where("is_active = ?", true).Count(&stats.TotalTenants)

	var invoices []models.Invoice
	config.DB.Where("month = ? AND year = ?", month, year).Find(&invoices)
	for _, inv := range invoices {
		stats.TotalIncomeThisMonth = stats.TotalIncomeThisMonth.Add(inv.Total)
		stats.TotalPaidThisMonth = stats.TotalPaidThisMonth.Add(inv.PaidAmount)
	}
	stats.TotalUnpaidThisMonth = stats.TotalIncomeThisMonth.Sub(stats.TotalPaidThisMonth)
	stats.TotalExpenseThisMonth = sumExpenses(month, year)

	if config.RDB != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := config.RDB.Set(config.Ctx, dashboardCacheKey, data, time.Minute).Err(); err != nil {
				slog.Warn("Failed to cache dashboard stats", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}

func buildMonthlyReport(month, year int) (*MonthlyReport, error) {
	var invoices []models.Invoice
	err := config.DB.Preload("Room").Preload("Room.Location").
		Where("month = ? AND year = ?", month, year).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Month: month, Year: year, UnpaidInvoices: []UnpaidInvoice{}}
	for _, inv := range invoices {
		report.TotalIncome = report.TotalIncome.Add(inv.Total)
		report.TotalCollected = report.TotalCollected.Add(inv.PaidAmount)

		if inv.Status != models.InvoicePaid {
			report.UnpaidInvoices = append(report.UnpaidInvoices, UnpaidInvoice{
				ID:           inv.ID,
				RoomCode:     inv.Room.RoomCode,
				LocationName: inv.Room.Location.Name,
				Total:        inv.Total,
				PaidAmount:   inv.PaidAmount,
				Remaining:    inv.Total.Sub(inv.PaidAmount),
			})
		}
	}
	report.TotalPending = report.TotalIncome.Sub(report.TotalCollected)
	report.TotalExpense = sumExpenses(month, year)
	report.NetIncome = report.TotalCollected.Sub(report.TotalExpense)
	return report, nil
}

func parsePeriod(c *gin.Context) (month, year int, ok bool) {
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errM != nil || errY != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month and year query parameters are required"})
		return 0, 0, false
	}
	return month, year, true
}

// GetMonthlyReportHandler returns the report for one period.
func GetMonthlyReportHandler(c *gin.Context) {
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := buildMonthlyReport(month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
