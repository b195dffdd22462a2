package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the webhook surface on the router.
func RegisterRoutes(r *gin.Engine, h *APIHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)

	r.POST("/check-service-area", h.CheckServiceArea)
	r.POST("/report-emergency", h.ReportEmergency)
	r.POST("/check-availability", h.CheckAvailability)
	r.POST("/book-appointment", h.BookAppointment)
}
