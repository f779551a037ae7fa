package routes

import (
	"deepdarshak/internal/controllers"
	"deepdarshak/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VesselRoutes(r *gin.Engine) {
	vessels := r.Group("/vessels")
	{
		// Trajectory endpoints feed public map renderers
		vessels.GET("/:mmsi/positions", controllers.GetPositionsGeoJSON)
		vessels.GET("/:mmsi/track", controllers.GetTrackLine)

		// Descriptive data requires an account token
		vessels.GET("/:mmsi", middleware.RequireAuth(), controllers.GetVesselSummary)
		vessels.GET("/:mmsi/position", middleware.RequireAuth(), controllers.GetLatestPosition)
		vessels.GET("/:mmsi/anomalies", middleware.RequireAuth(), controllers.GetVesselAnomalies)
	}
}
