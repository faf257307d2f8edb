package handlers

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnfromvideo/internal/middleware"
)

func NewRouter(courseHandler *CourseHandler, statusHandler *StatusHandler, limiter *middleware.RateLimiter, allowedOrigins string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins == "" || allowedOrigins == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/", statusHandler.Root)
		api.POST("/status", statusHandler.Create)
		api.GET("/status", statusHandler.List)

		// Конвертация дергает внешние API — прикрываем лимитером
		api.POST("/convert-youtube", limiter.Limit("convert", 10, 1*time.Minute), courseHandler.Convert)

		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.GetOne)
	}

	return r
}
