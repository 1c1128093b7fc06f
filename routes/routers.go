package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nyumba/constants"
	"nyumba/controllers"
	middlewares "nyumba/middleware"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) {

	bookingController := controllers.NewBookingController(db, redisCli, m)
	propertyController := controllers.NewPropertyController(db, redisCli)
	statsController := controllers.NewStatsController(db)

	anyRole := middlewares.AuthMiddleware(constants.RoleBuyer, constants.RoleAdmin, constants.RoleSeller)
	sellerOrAdmin := middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleSeller)

	v1 := router.Group("/api/v1")

	v1.GET("/bookings", anyRole, bookingController.GetBookings)
	v1.POST("/bookings", anyRole, bookingController.CreateBooking)
	v1.GET("/bookings/dates", bookingController.GetBookedDates)
	v1.GET("/bookings/:id", anyRole, bookingController.GetBookingDetail)
	v1.PUT("/bookings/:id", anyRole, bookingController.UpdateBookingStatus)
	v1.PUT("/bookings/:id/status", anyRole, bookingController.UpdateBookingStatus)
	v1.POST("/bookings/:id/confirm", sellerOrAdmin, bookingController.ConfirmBooking)
	v1.POST("/bookings/:id/reject", sellerOrAdmin, bookingController.RejectBooking)

	v1.GET("/properties", propertyController.GetProperties)
	v1.POST("/properties", sellerOrAdmin, propertyController.CreateProperty)
	v1.GET("/properties/lastSearch", anyRole, propertyController.GetLastSearch)
	v1.GET("/properties/:id", propertyController.GetPropertyDetail)
	v1.PUT("/properties", sellerOrAdmin, propertyController.UpdateProperty)
	v1.PUT("/propertyStatus", sellerOrAdmin, propertyController.ChangePropertyStatus)
	v1.DELETE("/properties/:id", sellerOrAdmin, propertyController.DeleteProperty)
	v1.GET("/properties/:id/availability", bookingController.CheckAvailability)

	v1.POST("/favorites/:id", anyRole, propertyController.AddFavorite)
	v1.GET("/favorites", anyRole, propertyController.GetFavorites)

	v1.GET("/stats", anyRole, statsController.GetStats)
}
