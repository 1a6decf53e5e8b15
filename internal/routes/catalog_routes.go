package routes

import (
	"github.com/gin-gonic/gin"

	"reparto_tracker/internal/middleware"
)

func CatalogRoutes(api *gin.RouterGroup, h Handlers, auth *middleware.Auth) {
	catalog := api.Group("")
	catalog.Use(auth.RequireAuthWithRole(middleware.RolePlanner))
	{
		catalog.GET("/clients", h.Catalog.ListClients)
		catalog.GET("/clients/:id/dropoff-points", h.Catalog.ListDropOffPoints)
		catalog.GET("/drivers", h.Catalog.ListDrivers)
		catalog.POST("/drivers", h.Catalog.CreateDriver)
		catalog.GET("/zones", h.Catalog.ListZones)
		catalog.POST("/dropoff-points", h.Catalog.CreateDropOffPoint)
	}
}
