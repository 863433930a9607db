package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportMonthlyReportHandler renders the monthly report as an Excel workbook:
// a summary block followed by the outstanding-invoice table.
func ExportMonthlyReportHandler(c *gin.Context) {
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := buildMonthlyReport(month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Monthly report %02d/%d", report.Month, report.Year))

	summary := [][]interface{}{
		{"Total income", report.TotalIncome.String()},
		{"Collected", report.TotalCollected.String()},
		{"Pending", report.TotalPending.String()},
		{"Expenses", report.TotalExpense.String()},
		{"Net income", report.NetIncome.String()},
	}
	for i, row := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+3), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+3), row[1])
	}

	headerRow := len(summary) + 4
	headers := []string{"Invoice ID", "Room", "Location", "Total", "Paid", "Remaining"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	for i, inv := range report.UnpaidInvoices {
		values := []interface{}{inv.ID, inv.RoomCode, inv.LocationName,
			inv.Total.String(), inv.PaidAmount.String(), inv.Remaining.String()}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, headerRow+1+i)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
		return
	}

	filename := fmt.Sprintf("report_%d_%02d.xlsx", report.Year, report.Month)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
