package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/internal/billing"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateMeterRequest struct {
	RoomID    uint             `json:"room_id" binding:"required"`
	MeterType models.MeterType `json:"meter_type" binding:"required,oneof=electric water"`
	MeterCode string           `json:"meter_code"`
	Notes     string           `json:"notes"`
}

type CreateReadingRequest struct {
	MeterID    uint            `json:"meter_id" binding:"required"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Year       int             `json:"year" binding:"required,min=2000"`
	OldReading decimal.Decimal `json:"old_reading"`
	NewReading decimal.Decimal `json:"new_reading"`
}

type UpdateReadingRequest struct {
	OldReading *decimal.Decimal `json:"old_reading"`
	NewReading *decimal.Decimal `json:"new_reading"`
}

type BatchReadingItem struct {
	RoomID     uint             `json:"room_id" binding:"required"`
	MeterType  models.MeterType `json:"meter_type" binding:"required,oneof=electric water"`
	OldReading decimal.Decimal  `json:"old_reading"`
	NewReading decimal.Decimal  `json:"new_reading"`
}

type BatchReadingRequest struct {
	Month    int                `json:"month" binding:"required,min=1,max=12"`
	Year     int                `json:"year" binding:"required,min=2000"`
	Readings []BatchReadingItem `json:"readings" binding:"required,dive"`
}

// MeterResponse decorates a meter with its most recent reading value.
type MeterResponse struct {
	models.Meter
	LatestReading *decimal.Decimal `json:"latest_reading"`
}

// ListMetersHandler returns meters with their latest reading, filterable by
// room and type.
func ListMetersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Meter{})
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if meterType := c.Query("meter_type"); meterType != "" {
		query = query.Where("meter_type = ?", meterType)
	}

	var meters []models.Meter
	if err := query.Find(&meters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meters"})
		return
	}

	result := make([]MeterResponse, 0, len(meters))
	for _, meter := range meters {
		resp := MeterResponse{Meter: meter}
		var latest models.MeterReading
		err := config.DB.Where("meter_id = ?", meter.ID).
			Order("year desc, month desc").
			First(&latest).Error
		if err == nil {
			resp.LatestReading = &latest.NewReading
		}
		result = append(result, resp)
	}
	c.JSON(http.StatusOK, result)
}

// CreateMeterHandler attaches a meter to a room. Each room holds at most one
// meter per type.
func CreateMeterHandler(c *gin.Context) {
	var req CreateMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var room models.Room
	if err := config.DB.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var count int64
	config.DB.Model(&models.Meter{}).
		Where("room_id = ? AND meter_type = ?", req.RoomID, req.MeterType).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room already has a " + string(req.MeterType) + " meter"})
		return
	}

	meter := models.Meter{
		RoomID:    req.RoomID,
		MeterType: req.MeterType,
		MeterCode: req.MeterCode,
		Notes:     req.Notes,
	}
	if err := config.DB.Create(&meter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meter"})
		return
	}
	c.JSON(http.StatusCreated, meter)
}

// ListReadingsHandler returns readings filtered by period, room and meter type.
func ListReadingsHandler(c *gin.Context) {
	query := config.DB.Model(&models.MeterReading{}).
		Joins("JOIN meters ON meters.id = meter_readings.meter_id").
		Preload("Meter").
		Order("meter_readings.year desc, meter_readings.month desc")

	if month := c.Query("month"); month != "" {
		query = query.Where("meter_readings.month = ?", month)
	}
	if year := c.Query("year"); year != "" {
		query = query.Where("meter_readings.year = ?", year)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("meters.room_id = ?", roomID)
	}
	if meterType := c.Query("meter_type"); meterType != "" {
		query = query.Where("meters.meter_type = ?", meterType)
	}

	var readings []models.MeterReading
	if err := query.Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}
	c.JSON(http.StatusOK, readings)
}

// CreateReadingHandler records one month's reading for a meter.
func CreateReadingHandler(c *gin.Context) {
	var req CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reading, err := Billing.RecordReading(req.MeterID, req.Month, req.Year, req.OldReading, req.NewReading)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// CreateReadingsBatchHandler imports a month's readings in bulk; items
// addressed by room and meter type, existing readings overwritten in place.
func CreateReadingsBatchHandler(c *gin.Context) {
	var req BatchReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	items := make([]billing.BatchReading, 0, len(req.Readings))
	for _, r := range req.Readings {
		items = append(items, billing.BatchReading{
			RoomID:     r.RoomID,
			MeterType:  r.MeterType,
			OldReading: r.OldReading,
			NewReading: r.NewReading,
		})
	}

	result, err := Billing.RecordReadingBatch(req.Month, req.Year, items)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateReadingHandler corrects an existing reading; consumption is
// recomputed from the new values.
func UpdateReadingHandler(c *gin.Context) {
	var reading models.MeterReading
	if err := config.DB.First(&reading, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reading not found"})
		return
	}

	var req UpdateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	oldReading := reading.OldReading
	if req.OldReading != nil {
		oldReading = *req.OldReading
	}
	newReading := reading.NewReading
	if req.NewReading != nil {
		newReading = *req.NewReading
	}

	updated, err := Billing.UpdateReading(reading.ID, oldReading, newReading)
	if err != nil {
		respondBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
