package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"registration-service/controllers"
	"registration-service/middleware"
)

func RegisterRoutes(r *gin.Engine, rc *controllers.RegistrationController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "registration-service"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimit())
	{
		api.GET("/config", rc.GetConfig)
		api.POST("/create-order", rc.CreateOrder)
		api.POST("/register", rc.Register)
		api.GET("/download-registrations", rc.DownloadRegistrations)
	}
}
