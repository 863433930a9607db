package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateLocationRequest struct {
	Name          string           `json:"name" binding:"required"`
	Address       string           `json:"address"`
	OwnerName     string           `json:"owner_name"`
	OwnerPhone    string           `json:"owner_phone"`
	ElectricPrice *decimal.Decimal `json:"electric_price"`
	WaterPrice    *decimal.Decimal `json:"water_price"`
	GarbageFee    *decimal.Decimal `json:"garbage_fee"`
	WifiFee       *decimal.Decimal `json:"wifi_fee"`
	TVFee         *decimal.Decimal `json:"tv_fee"`
	LaundryFee    *decimal.Decimal `json:"laundry_fee"`
	PaymentDueDay *int             `json:"payment_due_day"`
	Notes         string           `json:"notes"`
}

type UpdateLocationRequest struct {
	Name          *string          `json:"name"`
	Address       *string          `json:"address"`
	OwnerName     *string          `json:"owner_name"`
	OwnerPhone    *string          `json:"owner_phone"`
	ElectricPrice *decimal.Decimal `json:"electric_price"`
	WaterPrice    *decimal.Decimal `json:"water_price"`
	GarbageFee    *decimal.Decimal `json:"garbage_fee"`
	WifiFee       *decimal.Decimal `json:"wifi_fee"`
	TVFee         *decimal.Decimal `json:"tv_fee"`
	LaundryFee    *decimal.Decimal `json:"laundry_fee"`
	PaymentDueDay *int             `json:"payment_due_day"`
	Notes         *string          `json:"notes"`
}

// LocationResponse decorates a location with its occupancy counts.
type LocationResponse struct {
	models.Location
	RoomCount     int64 `json:"room_count"`
	OccupiedCount int64 `json:"occupied_count"`
}

func validatePrices(prices ...*decimal.Decimal) error {
	for _, p := range prices {
		if p != nil && p.IsNegative() {
			return errors.New("prices must not be negative")
		}
	}
	return nil
}

// applyLocationFees sets the pricing fields that are supplied; nil means
// leave the current (or database default) value alone.
func applyLocationFees(location *models.Location, electric, water, garbage, wifi, tv, laundry *decimal.Decimal, dueDay *int) {
	if electric != nil {
		location.ElectricPrice = *electric
	}
	if water != nil {
		location.WaterPrice = *water
	}
	if garbage != nil {
		location.GarbageFee = *garbage
	}
	if wifi != nil {
		location.WifiFee = *wifi
	}
	if tv != nil {
		location.TVFee = *tv
	}
	if laundry != nil {
		location.LaundryFee = *laundry
	}
	if dueDay != nil {
		location.PaymentDueDay = *dueDay
	}
}

func locationCounts(locationID uint) (rooms, occupied int64) {
	config.DB.Model(&models.Room{}).Where("location_id = ?", locationID).Count(&rooms)
	config.DB.Model(&models.Room{}).
		Where("location_id = ? AND status = ?", locationID, models.RoomOccupied).
		Count(&occupied)
	return rooms, occupied
}

// ListLocationsHandler returns all locations with room/occupancy counts.
func ListLocationsHandler(c *gin.Context) {
	var locations []models.Location
	if err := config.DB.Preload("RoomTypes").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	result := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		rooms, occupied := locationCounts(loc.ID)
		result = append(result, LocationResponse{Location: loc, RoomCount: rooms, OccupiedCount: occupied})
	}
	c.JSON(http.StatusOK, result)
}

// CreateLocationHandler adds a new location.
func CreateLocationHandler(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := validatePrices(req.ElectricPrice, req.WaterPrice, req.GarbageFee, req.WifiFee, req.TVFee, req.LaundryFee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := models.Location{
		Name:       req.Name,
		Address:    req.Address,
		OwnerName:  req.OwnerName,
		OwnerPhone: req.OwnerPhone,
		Notes:      req.Notes,
	}
	applyLocationFees(&location, req.ElectricPrice, req.WaterPrice, req.GarbageFee, req.WifiFee, req.TVFee, req.LaundryFee, req.PaymentDueDay)

	if err := config.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}
	c.JSON(http.StatusCreated, LocationResponse{Location: location})
}

// GetLocationHandler returns one location with its room types and counts.
func GetLocationHandler(c *gin.Context) {
	var location models.Location
	if err := config.DB.Preload("RoomTypes").First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	rooms, occupied := locationCounts(location.ID)
	c.JSON(http.StatusOK, LocationResponse{Location: location, RoomCount: rooms, OccupiedCount: occupied})
}

// UpdateLocationHandler applies a partial update to a location.
func UpdateLocationHandler(c *gin.Context) {
	var location models.Location
	if err := config.DB.Preload("RoomTypes").First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := validatePrices(req.ElectricPrice, req.WaterPrice, req.GarbageFee, req.WifiFee, req.TVFee, req.LaundryFee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.OwnerName != nil {
		location.OwnerName = *req.OwnerName
	}
	if req.OwnerPhone != nil {
		location.OwnerPhone = *req.OwnerPhone
	}
	if req.Notes != nil {
		location.Notes = *req.Notes
	}
	applyLocationFees(&location, req.ElectricPrice, req.WaterPrice, req.GarbageFee, req.WifiFee, req.TVFee, req.LaundryFee, req.PaymentDueDay)

	if err := config.DB.Save(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	rooms, occupied := locationCounts(location.ID)
	c.JSON(http.StatusOK, LocationResponse{Location: location, RoomCount: rooms, OccupiedCount: occupied})
}

// DeleteLocationHandler removes a location. A location that still has rooms
// cannot be deleted.
func DeleteLocationHandler(c *gin.Context) {
	var location models.Location
	if err := config.DB.First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var roomCount int64
	config.DB.Model(&models.Room{}).Where("location_id = ?", location.ID).Count(&roomCount)
	if roomCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a location that still has rooms"})
		return
	}

	if err := config.DB.Select(clause.Associations).Delete(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	c.Status(http.StatusNoContent)
}
