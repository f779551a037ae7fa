package routes

import (
	"deepdarshak/internal/controllers"
	"deepdarshak/internal/middleware"

	"github.com/gin-gonic/gin"
)

func IngestRoutes(r *gin.Engine) {
	ingest := r.Group("/ingest")
	ingest.Use(middleware.RequireAuthWithRole("feed"))
	{
		ingest.POST("/positions", controllers.IngestPositions)
	}
}
