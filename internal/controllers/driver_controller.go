package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reparto_tracker/internal/middleware"
	"reparto_tracker/internal/services"
)

type stopStatusPayload struct {
	Status string `json:"status"`
}

// DriverController serves the driver app.
type DriverController struct {
	stops *services.StopStatusService
	tasks *services.DriverTaskService
}

func NewDriverController(stops *services.StopStatusService, tasks *services.DriverTaskService) *DriverController {
	return &DriverController{stops: stops, tasks: tasks}
}

// SetStopStatus moves a stop to the posted status. Drivers only see stops of their
// own routes.
func (dc *DriverController) SetStopStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "stop")
	if !ok {
		return
	}
	var payload stopStatusPayload
	if !bindJSON(c, &payload) {
		return
	}

	stop, err := dc.stops.SetStatus(c.Request.Context(), id, payload.Status, middleware.ActingDriver(c))
	if err != nil {
		respondError(c, err, "update stop status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

// GetDriverTasks lists a driver's stops for ?day=YYYY-MM-DD, today by default.
func (dc *DriverController) GetDriverTasks(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format."})
		return
	}
	day, err := dc.tasks.ParseDay(c.Query("day"))
	if err != nil {
		respondError(c, err, "fetch driver tasks")
		return
	}

	tasks, err := dc.tasks.TasksForDriver(c.Request.Context(), driverID, day)
	if err != nil {
		respondError(c, err, "fetch driver tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}
