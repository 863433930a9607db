package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/internal/billing"
	"github.com/LoAnTTM/RentManager/internal/handlers"
	"github.com/LoAnTTM/RentManager/internal/routes"
	"github.com/LoAnTTM/RentManager/models"
)

func main() {
	config.Load()
	config.ConnectDB()
	config.ConnectRedis()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.RoomType{},
		&models.Room{},
		&models.Tenant{},
		&models.Meter{},
		&models.MeterReading{},
		&models.Invoice{},
		&models.Payment{},
		&models.Expense{},
	)
	if err != nil {
		slog.Error("Database migration failed", "error", err)
		return
	}

	handlers.Billing = billing.NewService(config.DB)

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	routes.SetupRoutes(r)

	slog.Info("Starting server", "addr", config.App.ListenAddr)
	if err := r.Run(config.App.ListenAddr); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
