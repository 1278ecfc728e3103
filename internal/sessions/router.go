package sessions

import "github.com/gin-gonic/gin"

func SetupSessionRoutes(router *gin.RouterGroup, controller Controller, staff gin.HandlerFunc) {
	sessions := router.Group("/sessions")
	{
		sessions.GET("", controller.ListSessions)
		sessions.GET("/upcoming", controller.ListUpcomingSessions)
		sessions.GET("/:id", controller.GetSession)
		sessions.GET("/:id/availability", controller.GetAvailability)

		sessions.POST("", staff, controller.CreateSession)
		sessions.DELETE("/:id", staff, controller.DeleteSession)
	}
}
