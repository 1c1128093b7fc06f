package main

import (
	"log"
	"net/http"
	"os"

	"nyumba/config"
	"nyumba/jobs"
	"nyumba/routes"
	"nyumba/services"
	"nyumba/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	// if err := config.DB.AutoMigrate(&models.User{}, &models.Property{}, &models.Booking{}); err != nil {
	// 	panic("Failed to migrate tables: " + err.Error())
	// }
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:       config.DB,
		Notifier: services.NewNotificationService(m),
		Logger:   logger.NewDefaultLogger(logger.InfoLevel),
		InvalidateView: func() {
			if err := services.InvalidateBookingCaches(config.Ctx, config.RedisClient); err != nil {
				log.Printf("Lỗi khi xóa cache bookings: %v", err)
			}
		},
	})
	jobs.SetStayCompleter(bookingService)

	migrateTables()

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
