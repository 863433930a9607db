package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/LoAnTTM/RentManager/internal/handlers"
)

// RegisterAPIRoutes registers every authenticated API route under /api/v1.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", handlers.GetDashboardStatsHandler)
		dashboard.GET("/report", handlers.GetMonthlyReportHandler)
		dashboard.GET("/report/export", handlers.ExportMonthlyReportHandler)
	}

	locations := api.Group("/locations")
	{
		locations.GET("", handlers.ListLocationsHandler)
		locations.POST("", handlers.CreateLocationHandler)
		locations.GET("/:id", handlers.GetLocationHandler)
		locations.PUT("/:id", handlers.UpdateLocationHandler)
		locations.DELETE("/:id", handlers.DeleteLocationHandler)
	}

	roomTypes := api.Group("/room-types")
	{
		roomTypes.GET("", handlers.ListRoomTypesHandler)
		roomTypes.POST("", handlers.CreateRoomTypeHandler)
		roomTypes.GET("/:id", handlers.GetRoomTypeHandler)
		roomTypes.PUT("/:id", handlers.UpdateRoomTypeHandler)
		roomTypes.DELETE("/:id", handlers.DeleteRoomTypeHandler)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("", handlers.ListRoomsHandler)
		rooms.POST("", handlers.CreateRoomHandler)
		rooms.GET("/:id", handlers.GetRoomHandler)
		rooms.PUT("/:id", handlers.UpdateRoomHandler)
		rooms.DELETE("/:id", handlers.DeleteRoomHandler)
	}

	tenants := api.Group("/tenants")
	{
		tenants.GET("", handlers.ListTenantsHandler)
		tenants.POST("", handlers.CreateTenantHandler)
		tenants.GET("/:id", handlers.GetTenantHandler)
		tenants.PUT("/:id", handlers.UpdateTenantHandler)
		tenants.PUT("/:id/move-out", handlers.MoveOutTenantHandler)
		tenants.DELETE("/:id", handlers.DeleteTenantHandler)
	}

	meters := api.Group("/meters")
	{
		meters.GET("", handlers.ListMetersHandler)
		meters.POST("", handlers.CreateMeterHandler)
		meters.GET("/readings", handlers.ListReadingsHandler)
		meters.POST("/readings", handlers.CreateReadingHandler)
		meters.POST("/readings/batch", handlers.CreateReadingsBatchHandler)
		meters.PUT("/readings/:id", handlers.UpdateReadingHandler)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("", handlers.ListInvoicesHandler)
		invoices.POST("/generate", handlers.GenerateInvoicesHandler)
		invoices.GET("/:id", handlers.GetInvoiceHandler)
		invoices.PUT("/:id", handlers.UpdateInvoiceHandler)
		invoices.PUT("/:id/absent", handlers.UpdateAbsenceHandler)
		invoices.PUT("/:id/pay", handlers.PayInvoiceHandler)
	}

	payments := api.Group("/payments")
	{
		payments.GET("", handlers.ListPaymentsHandler)
		payments.POST("", handlers.CreatePaymentHandler)
	}

	expenses := api.Group("/expenses")
	{
		expenses.GET("", handlers.ListExpensesHandler)
		expenses.POST("", handlers.CreateExpenseHandler)
		expenses.GET("/:id", handlers.GetExpenseHandler)
		expenses.PUT("/:id", handlers.UpdateExpenseHandler)
		expenses.DELETE("/:id", handlers.DeleteExpenseHandler)
	}
}
