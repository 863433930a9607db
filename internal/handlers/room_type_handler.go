package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateRoomTypeRequest struct {
	LocationID     uint             `json:"location_id" binding:"required"`
	Code           string           `json:"code" binding:"required,max=10"`
	Name           string           `json:"name"`
	Price          decimal.Decimal  `json:"price"`
	DailyDeduction *decimal.Decimal `json:"daily_deduction"`
	Description    string           `json:"description"`
}

type UpdateRoomTypeRequest struct {
	Code           *string          `json:"code"`
	Name           *string          `json:"name"`
	Price          *decimal.Decimal `json:"price"`
	DailyDeduction *decimal.Decimal `json:"daily_deduction"`
	Description    *string          `json:"description"`
}

// ListRoomTypesHandler returns room types, optionally for one location.
func ListRoomTypesHandler(c *gin.Context) {
	query := config.DB.Order("code")
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}

	var roomTypes []models.RoomType
	if err := query.Find(&roomTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room types"})
		return
	}
	c.JSON(http.StatusOK, roomTypes)
}

// CreateRoomTypeHandler adds a pricing tier to a location. The code must be
// unique within the location.
func CreateRoomTypeHandler(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	var location models.Location
	if err := config.DB.First(&location, req.LocationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var count int64
	config.DB.Model(&models.RoomType{}).
		Where("location_id = ? AND code = ?", req.LocationID, req.Code).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room type code already exists in this location"})
		return
	}

	roomType := models.RoomType{
		LocationID:  req.LocationID,
		Code:        req.Code,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
	if req.DailyDeduction != nil {
		roomType.DailyDeduction = *req.DailyDeduction
	}

	if err := config.DB.Create(&roomType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room type"})
		return
	}
	c.JSON(http.StatusCreated, roomType)
}

// GetRoomTypeHandler returns one room type.
func GetRoomTypeHandler(c *gin.Context) {
	var roomType models.RoomType
	if err := config.DB.First(&roomType, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room type not found"})
		return
	}
	c.JSON(http.StatusOK, roomType)
}

// UpdateRoomTypeHandler applies a partial update; code uniqueness within the
// location is re-checked when the code changes.
func UpdateRoomTypeHandler(c *gin.Context) {
	var roomType models.RoomType
	if err := config.DB.First(&roomType, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room type not found"})
		return
	}

	var req UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Code != nil && *req.Code != roomType.Code {
		var count int64
		config.DB.Model(&models.RoomType{}).
			Where("location_id = ? AND code = ? AND id <> ?", roomType.LocationID, *req.Code, roomType.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room type code already exists in this location"})
			return
		}
		roomType.Code = *req.Code
	}
	if req.Name != nil {
		roomType.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		roomType.Price = *req.Price
	}
	if req.DailyDeduction != nil {
		roomType.DailyDeduction = *req.DailyDeduction
	}
	if req.Description != nil {
		roomType.Description = *req.Description
	}

	if err := config.DB.Save(&roomType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room type"})
		return
	}
	c.JSON(http.StatusOK, roomType)
}

// DeleteRoomTypeHandler removes a room type unless rooms still reference it.
func DeleteRoomTypeHandler(c *gin.Context) {
	var roomType models.RoomType
	if err := config.DB.First(&roomType, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room type not found"})
		return
	}

	var roomCount int64
	config.DB.Model(&models.Room{}).Where("room_type_id = ?", roomType.ID).Count(&roomCount)
	if roomCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a room type that is still in use"})
		return
	}

	if err := config.DB.Delete(&roomType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room type"})
		return
	}
	c.Status(http.StatusNoContent)
}
