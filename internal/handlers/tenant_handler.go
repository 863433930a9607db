package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

type CreateTenantRequest struct {
	RoomID     uint   `json:"room_id" binding:"required"`
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	IDCard     string `json:"id_card"`
	MoveInDate string `json:"move_in_date" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateTenantRequest struct {
	RoomID      *uint   `json:"room_id"`
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	IDCard      *string `json:"id_card"`
	MoveInDate  *string `json:"move_in_date"`
	MoveOutDate *string `json:"move_out_date"`
	IsActive    *bool   `json:"is_active"`
	Notes       *string `json:"notes"`
}

// vacateRoomIfEmpty flips the room back to vacant when no active tenant other
// than excludeTenantID remains on it.
func vacateRoomIfEmpty(db *gorm.DB, roomID, excludeTenantID uint) error {
	var others int64
	err := db.Model(&models.Tenant{}).
		Where("room_id = ? AND id <> ? AND is_active = ?", roomID, excludeTenantID, true).
		Count(&others).Error
	if err != nil {
		return err
	}
	if others > 0 {
		return nil
	}
	return db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("status", models.RoomVacant).Error
}

// ListTenantsHandler returns tenants, filterable by room and active flag.
func ListTenantsHandler(c *gin.Context) {
	query := config.DB.Preload("Room").Order("full_name")
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var tenants []models.Tenant
	if err := query.Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tenants"})
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// CreateTenantHandler moves a tenant into a room, marking it occupied.
func CreateTenantHandler(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	moveIn, err := parseDate(req.MoveInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move_in_date, use YYYY-MM-DD"})
		return
	}

	var room models.Room
	if err := config.DB.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	tenant := models.Tenant{
		RoomID:     req.RoomID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		IDCard:     req.IDCard,
		MoveInDate: moveIn,
		IsActive:   true,
		Notes:      req.Notes,
	}
	if err := config.DB.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	config.DB.Model(&room).Update("status", models.RoomOccupied)

	tenant.Room = room
	c.JSON(http.StatusCreated, tenant)
}

// GetTenantHandler returns one tenant.
func GetTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.Preload("Room").First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// UpdateTenantHandler applies a partial update. Every supplied field is
// validated before anything is written; the tenant row and any room status
// flips commit together or not at all. Transferring the tenant to another
// room marks the new room occupied and vacates the old one when no active
// tenant remains there.
func UpdateTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.Preload("Room").First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.MoveInDate != nil {
		moveIn, err := parseDate(*req.MoveInDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move_in_date, use YYYY-MM-DD"})
			return
		}
		tenant.MoveInDate = moveIn
	}
	if req.MoveOutDate != nil {
		moveOut, err := parseDate(*req.MoveOutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move_out_date, use YYYY-MM-DD"})
			return
		}
		tenant.MoveOutDate = &moveOut
	}

	transfer := req.RoomID != nil && *req.RoomID != tenant.RoomID
	if transfer {
		var newRoom models.Room
		if err := config.DB.First(&newRoom, *req.RoomID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "New room not found"})
			return
		}
	}

	if req.FullName != nil {
		tenant.FullName = *req.FullName
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.IDCard != nil {
		tenant.IDCard = *req.IDCard
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		tenant.Notes = *req.Notes
	}

	oldRoomID := tenant.RoomID
	if transfer {
		tenant.RoomID = *req.RoomID
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}
		if transfer {
			err := tx.Model(&models.Room{}).Where("id = ?", tenant.RoomID).
				Update("status", models.RoomOccupied).Error
			if err != nil {
				return err
			}
			if err := vacateRoomIfEmpty(tx, oldRoomID, tenant.ID); err != nil {
				return err
			}
		}
		if req.IsActive != nil && !*req.IsActive {
			if err := vacateRoomIfEmpty(tx, tenant.RoomID, tenant.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}

	config.DB.Preload("Room").First(&tenant, tenant.ID)
	c.JSON(http.StatusOK, tenant)
}

// MoveOutTenantHandler deactivates a tenant and vacates the room when they
// were its last active occupant. The move-out date defaults to today.
func MoveOutTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.Preload("Room").First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	moveOut := time.Now()
	if dateStr := c.Query("move_out_date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move_out_date, use YYYY-MM-DD"})
			return
		}
		moveOut = parsed
	}

	tenant.IsActive = false
	tenant.MoveOutDate = &moveOut
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}
		return vacateRoomIfEmpty(tx, tenant.RoomID, tenant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}

	config.DB.Preload("Room").First(&tenant, tenant.ID)
	c.JSON(http.StatusOK, tenant)
}

// DeleteTenantHandler removes a tenant record, vacating the room when no
// active tenant remains.
func DeleteTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	roomID := tenant.RoomID
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&tenant).Error; err != nil {
			return err
		}
		return vacateRoomIfEmpty(tx, roomID, tenant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tenant"})
		return
	}
	c.Status(http.StatusNoContent)
}
