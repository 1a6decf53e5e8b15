package routes

import (
	"github.com/gin-gonic/gin"

	"reparto_tracker/internal/middleware"
)

func DriverRoutes(api *gin.RouterGroup, h Handlers, auth *middleware.Auth) {
	driver := api.Group("/driver")
	driver.Use(auth.RequireAuthWithRole(middleware.RoleDriver, middleware.RolePlanner))
	{
		driver.PATCH("/stops/:id/status", h.Driver.SetStopStatus)
		driver.GET("/:driverId/tasks", auth.RequireSameDriver("driverId"), h.Driver.GetDriverTasks)
	}
}
