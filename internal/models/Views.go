package models

import (
	"time"

	"github.com/google/uuid"
)

// StopTask is a stop enriched with its drop-off point and parent route fields.
// It is what the driver app and the route report render.
type StopTask struct {
	ID             uint       `json:"id"`
	RouteID        uint       `json:"route_id"`
	DropOffPointID uint       `json:"dropoff_point_id"`
	VisitOrder     int        `json:"visit_order"`
	Amount         *float64   `json:"amount"`
	Notes          string     `json:"notes"`
	Status         StopStatus `json:"status"`

	DropOffName     string  `json:"dropoff_name"`
	DropOffAddress  *string `json:"dropoff_address"`
	DropOffTimeFrom *string `json:"-"`
	DropOffTimeTo   *string `json:"-"`
	DropOffPhone    *string `json:"dropoff_phone"`
	// Filled from DropOffTimeFrom/DropOffTimeTo by Enrich.
	DropOffTimeWindow *string `gorm:"-" json:"dropoff_time_window"`

	RouteDate     time.Time `json:"route_date"`
	RouteNotes    string    `json:"route_notes"`
	RouteBatch    int       `json:"route_batch"`
	RouteDriverID uuid.UUID `json:"driver_id"`
}

// Enrich derives the presentation-only fields.
func (t *StopTask) Enrich() {
	t.DropOffTimeWindow = FormatTimeWindow(t.DropOffTimeFrom, t.DropOffTimeTo)
}

// RouteSummary is one row of the planner's route listing.
type RouteSummary struct {
	ID         uint        `json:"id"`
	Date       time.Time   `json:"date"`
	DriverID   uuid.UUID   `json:"driver_id"`
	DriverName string      `json:"driver_name"`
	ClientID   *uuid.UUID  `json:"client_id"`
	ClientName *string     `json:"client_name"`
	ZoneID     uint        `json:"zone_id"`
	ZoneName   string      `json:"zone_name"`
	Batch      int         `json:"batch"`
	Notes      string      `json:"notes"`
	Status     RouteStatus `json:"status"`
	StopCount  int         `json:"stop_count"`
}

// RouteDetail is a route with its joined names and its enriched stops in visit order.
type RouteDetail struct {
	RouteSummary
	Stops []StopTask `json:"stops"`
}

// RouteReport is the denormalized print/export view of one route.
type RouteReport struct {
	RouteDetail
	TotalStops  int     `json:"total_stops"`
	TotalAmount float64 `json:"total_amount"`
}

// DriverTasks partitions a driver's stops for one day by status.
type DriverTasks struct {
	DriverID   uuid.UUID  `json:"driver_id"`
	Day        string     `json:"day"`
	InProgress []StopTask `json:"in_progress"`
	Assigned   []StopTask `json:"assigned"`
	Completed  []StopTask `json:"completed"`
}

// RouteFilter narrows the planner listing. Zero values mean "any".
type RouteFilter struct {
	From     *time.Time
	To       *time.Time
	DriverID *uuid.UUID
}
