package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reparto_tracker/internal/services"
	"reparto_tracker/internal/validation"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// RouteController serves the planner's route screens.
type RouteController struct {
	routes  *services.RouteService
	reports *services.ReportService
}

func NewRouteController(routes *services.RouteService, reports *services.ReportService) *RouteController {
	return &RouteController{routes: routes, reports: reports}
}

// CreateRoute stores a route with its stops. A repeated Idempotency-Key answers 200
// with the route created the first time.
func (rc *RouteController) CreateRoute(c *gin.Context) {
	var in validation.RouteSubmission
	if !bindJSON(c, &in) {
		return
	}

	route, created, err := rc.routes.Create(c.Request.Context(), in, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondError(c, err, "create route")
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"route": route})
}

func (rc *RouteController) UpdateRoute(c *gin.Context) {
	id, ok := paramID(c, "id", "route")
	if !ok {
		return
	}
	var in validation.RouteSubmission
	if !bindJSON(c, &in) {
		return
	}

	route, err := rc.routes.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "update route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) DeleteRoute(c *gin.Context) {
	id, ok := paramID(c, "id", "route")
	if !ok {
		return
	}
	if err := rc.routes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}

func (rc *RouteController) GetRoute(c *gin.Context) {
	id, ok := paramID(c, "id", "route")
	if !ok {
		return
	}
	route, err := rc.routes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// ListRoutes accepts optional ?date=YYYY-MM-DD and ?driver_id= filters.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	filter, err := services.ParseRouteFilter(c.Query("date"), c.Query("driver_id"))
	if err != nil {
		respondError(c, err, "list routes")
		return
	}
	routes, err := rc.routes.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "list routes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

func (rc *RouteController) GetRouteReport(c *gin.Context) {
	id, ok := paramID(c, "id", "route")
	if !ok {
		return
	}
	report, err := rc.reports.BuildReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "build route report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
