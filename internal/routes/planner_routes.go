package routes

import (
	"github.com/gin-gonic/gin"

	"reparto_tracker/internal/middleware"
)

func PlannerRoutes(api *gin.RouterGroup, h Handlers, auth *middleware.Auth) {
	routes := api.Group("/routes")
	routes.Use(auth.RequireAuthWithRole(middleware.RolePlanner))
	{
		routes.POST("", h.Routes.CreateRoute)
		routes.GET("", h.Routes.ListRoutes)
		routes.GET("/:id", h.Routes.GetRoute)
		routes.PUT("/:id", h.Routes.UpdateRoute)
		routes.DELETE("/:id", h.Routes.DeleteRoute)
		routes.GET("/:id/report", h.Routes.GetRouteReport)
	}
}
