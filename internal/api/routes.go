package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/status", handler.GetStatus)

		api.GET("/prospectuses", handler.GetProspectuses)
		api.POST("/prospectuses", handler.CreateProspectus)

		api.GET("/properties", handler.GetProperties)
		api.POST("/properties", handler.CreateProperty)

		api.GET("/pipeline", handler.GetPipeline)
		api.GET("/dashboard-stats", handler.GetDashboardStats)
		api.GET("/map", handler.GetMap)

		api.POST("/match/:prospectus_id", handler.MatchProspectus)
		api.POST("/match-all", handler.MatchAll)
		api.POST("/update-coordinates", handler.UpdateCoordinates)

		api.GET("/alerts/config", handler.GetAlertConfig)
		api.POST("/alerts/config", handler.UpdateAlertConfig)
		api.POST("/alerts/test", handler.TestAlertConfig)
	}
}
