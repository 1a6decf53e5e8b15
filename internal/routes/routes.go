package routes

import (
	"io"
	"os"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"reparto_tracker/internal/controllers"
	"reparto_tracker/internal/middleware"
)

// Handlers groups the controllers mounted by SetupRouter.
type Handlers struct {
	Routes  *controllers.RouteController
	Driver  *controllers.DriverController
	Catalog *controllers.CatalogController
	Health  *controllers.HealthController
}

// SetupRouter builds the engine with recovery, request ids, access logging and every
// API group. accessLog may be nil to log to stdout.
func SetupRouter(h Handlers, auth *middleware.Auth, accessLog io.Writer) *gin.Engine {
	if accessLog == nil {
		accessLog = os.Stdout
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(accessLog),
		ginlog.WithSkipPath([]string{"/health"}),
	))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	PlannerRoutes(api, h, auth)
	CatalogRoutes(api, h, auth)
	DriverRoutes(api, h, auth)

	return r
}
