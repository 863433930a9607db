package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateRoomRequest struct {
	LocationID uint             `json:"location_id" binding:"required"`
	RoomTypeID *uint            `json:"room_type_id"`
	RoomCode   string           `json:"room_code" binding:"required,max=20"`
	Price      *decimal.Decimal `json:"price"`
	Notes      string           `json:"notes"`
}

type UpdateRoomRequest struct {
	RoomTypeID *uint            `json:"room_type_id"`
	RoomCode   *string          `json:"room_code"`
	Price      *decimal.Decimal `json:"price"`
	Notes      *string          `json:"notes"`
}

// RoomResponse decorates a room with its active tenants and effective price.
type RoomResponse struct {
	models.Room
	ActiveTenants  []models.Tenant `json:"active_tenants"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
}

func toRoomResponse(room models.Room) RoomResponse {
	active := make([]models.Tenant, 0, len(room.Tenants))
	for _, t := range room.Tenants {
		if t.IsActive {
			active = append(active, t)
		}
	}
	resp := RoomResponse{Room: room, ActiveTenants: active, EffectivePrice: room.EffectivePrice()}
	resp.Room.Tenants = nil
	return resp
}

// ListRoomsHandler returns rooms with their location, type and active
// tenants; filterable by location, type and status.
func ListRoomsHandler(c *gin.Context) {
	query := config.DB.Preload("Location").Preload("RoomType").Preload("Tenants").
		Order("location_id, room_code")
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if roomTypeID := c.Query("room_type_id"); roomTypeID != "" {
		query = query.Where("room_type_id = ?", roomTypeID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	result := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, toRoomResponse(room))
	}
	c.JSON(http.StatusOK, result)
}

// CreateRoomHandler adds a room and auto-creates its electric and water
// meters. The room code must be unique within the location.
func CreateRoomHandler(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	var location models.Location
	if err := config.DB.First(&location, req.LocationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	if req.RoomTypeID != nil {
		var count int64
		config.DB.Model(&models.RoomType{}).
			Where("id = ? AND location_id = ?", *req.RoomTypeID, req.LocationID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room type not found in this location"})
			return
		}
	}

	var existing int64
	config.DB.Model(&models.Room{}).
		Where("location_id = ? AND room_code = ?", req.LocationID, req.RoomCode).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room code already exists in this location"})
		return
	}

	room := models.Room{
		LocationID: req.LocationID,
		RoomTypeID: req.RoomTypeID,
		RoomCode:   req.RoomCode,
		Price:      req.Price,
		Status:     models.RoomVacant,
		Notes:      req.Notes,
	}
	if err := config.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	meters := []models.Meter{
		{RoomID: room.ID, MeterType: models.MeterElectric},
		{RoomID: room.ID, MeterType: models.MeterWater},
	}
	if err := config.DB.Create(&meters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meters for room"})
		return
	}

	config.DB.Preload("Location").Preload("RoomType").First(&room, room.ID)
	c.JSON(http.StatusCreated, room)
}

// GetRoomHandler returns one room with details.
func GetRoomHandler(c *gin.Context) {
	var room models.Room
	err := config.DB.Preload("Location").Preload("RoomType").Preload("Tenants").
		First(&room, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

// UpdateRoomHandler applies a partial update; room code uniqueness and room
// type membership are re-checked when those fields change.
func UpdateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := config.DB.First(&room, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.RoomCode != nil && *req.RoomCode != room.RoomCode {
		var count int64
		config.DB.Model(&models.Room{}).
			Where("location_id = ? AND room_code = ? AND id <> ?", room.LocationID, *req.RoomCode, room.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room code already exists in this location"})
			return
		}
		room.RoomCode = *req.RoomCode
	}
	if req.RoomTypeID != nil {
		var count int64
		config.DB.Model(&models.RoomType{}).
			Where("id = ? AND location_id = ?", *req.RoomTypeID, room.LocationID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room type not found in this location"})
			return
		}
		room.RoomTypeID = req.RoomTypeID
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		room.Price = req.Price
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if err := config.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}

	config.DB.Preload("Location").Preload("RoomType").First(&room, room.ID)
	c.JSON(http.StatusOK, room)
}

// DeleteRoomHandler removes a room together with its meters, readings and
// invoices. Rooms with active tenants cannot be deleted.
func DeleteRoomHandler(c *gin.Context) {
	var room models.Room
	if err := config.DB.First(&room, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var activeTenants int64
	config.DB.Model(&models.Tenant{}).
		Where("room_id = ? AND is_active = ?", room.ID, true).
		Count(&activeTenants)
	if activeTenants > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a room that still has tenants"})
		return
	}

	if err := config.DB.Select(clause.Associations).Delete(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}
	c.Status(http.StatusNoContent)
}
