// Package validation implements the input contract of route, stop, drop-off point and
// driver submissions. It does no I/O and reports problems as field-indexed violations.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
)

const (
	maxNotesLen = 500
	// MaxMoney is the largest amount or tariff a numeric(10,2) column holds.
	MaxMoney = 99999999.99
)

// StopSubmission is one stop as posted by the planner. Scalars are loosely typed
// because the forms post numbers as strings.
type StopSubmission struct {
	DropOffPointID any     `json:"dropoff_point_id"`
	Amount         any     `json:"amount"`
	Notes          *string `json:"notes"`
	Status         *string `json:"status"`
}

// RouteSubmission is a route with its full stop list as posted by the planner.
type RouteSubmission struct {
	Date     string           `json:"date"`
	DriverID string           `json:"driver_id"`
	ClientID *string          `json:"client_id"`
	ZoneID   any              `json:"zone_id"`
	Batch    any              `json:"batch"`
	Status   string           `json:"status"`
	Notes    *string          `json:"notes"`
	Stops    []StopSubmission `json:"stops"`
}

// StopCommand is a validated stop. Its position in RouteCommand.Stops is its visit order.
type StopCommand struct {
	DropOffPointID uint
	Amount         *float64
	Notes          string
	Status         models.StopStatus
}

// RouteCommand is a validated, typed route submission.
type RouteCommand struct {
	Date     time.Time
	DriverID uuid.UUID
	ClientID *uuid.UUID
	ZoneID   uint
	Batch    int
	Status   models.RouteStatus
	Notes    string
	Stops    []StopCommand
}

// ValidateRoute checks a route submission and converts it to a RouteCommand.
// The command is only meaningful when the returned violations are empty.
func ValidateRoute(in RouteSubmission) (RouteCommand, apperr.Violations) {
	var (
		cmd RouteCommand
		v   apperr.Violations
	)

	if strings.TrimSpace(in.Date) == "" {
		v.Add("date", "date is required")
	} else if d, ok := parseDate(in.Date); !ok {
		v.Add("date", "date must be formatted as YYYY-MM-DD")
	} else {
		cmd.Date = d
	}

	if strings.TrimSpace(in.DriverID) == "" {
		v.Add("driver_id", "driver is required")
	} else if id, ok := parseUUID(in.DriverID); !ok {
		v.Add("driver_id", "driver must be a valid id")
	} else {
		cmd.DriverID = id
	}

	if c := optional(in.ClientID); c != nil {
		if id, ok := parseUUID(*c); !ok {
			v.Add("client_id", "principal client must be a valid id")
		} else {
			cmd.ClientID = &id
		}
	}

	if isBlank(in.ZoneID) {
		v.Add("zone_id", "zone is required")
	} else if n, ok := toInt(in.ZoneID); !ok || n < 1 {
		v.Add("zone_id", "zone must be a valid id")
	} else {
		cmd.ZoneID = uint(n)
	}

	if isBlank(in.Batch) {
		v.Add("batch", "batch is required")
	} else if n, ok := toInt(in.Batch); !ok {
		v.Add("batch", "batch must be an integer")
	} else if n < 1 {
		v.Add("batch", "batch must be at least 1")
	} else {
		cmd.Batch = n
	}

	status := models.RouteStatus(strings.TrimSpace(in.Status))
	if status == "" {
		v.Add("status", "status is required")
	} else if !status.IsValid() {
		v.Add("status", fmt.Sprintf("status must be one of %v", models.AllRouteStatuses()))
	} else {
		cmd.Status = status
	}

	if n := optional(in.Notes); n != nil {
		if tooLong(*n, maxNotesLen) {
			v.Add("notes", fmt.Sprintf("notes must be %d characters or less", maxNotesLen))
		}
		cmd.Notes = *n
	}

	// A route with a principal client must carry at least one stop. The violation
	// belongs to the list, not to any individual stop.
	if optional(in.ClientID) != nil && len(in.Stops) == 0 {
		v.Add("stops", "a route with a principal client needs at least one stop")
	}

	cmd.Stops = make([]StopCommand, 0, len(in.Stops))
	for i, s := range in.Stops {
		cmd.Stops = append(cmd.Stops, validateStop(i, s, &v))
	}

	return cmd, v
}

func validateStop(i int, in StopSubmission, v *apperr.Violations) StopCommand {
	field := func(name string) string { return fmt.Sprintf("stops.%d.%s", i, name) }

	cmd := StopCommand{Status: models.StopStatusPending}

	if isBlank(in.DropOffPointID) {
		v.Add(field("dropoff_point_id"), "drop-off point is required")
	} else if n, ok := toInt(in.DropOffPointID); !ok || n < 1 {
		v.Add(field("dropoff_point_id"), "drop-off point must be a valid id")
	} else {
		cmd.DropOffPointID = uint(n)
	}

	if !isBlank(in.Amount) {
		if f, ok := toFloat(in.Amount); !ok {
			v.Add(field("amount"), "amount must be a number")
		} else if f < 0 {
			v.Add(field("amount"), "amount cannot be negative")
		} else if f > MaxMoney {
			v.Add(field("amount"), fmt.Sprintf("amount must be at most %.2f", MaxMoney))
		} else {
			cmd.Amount = &f
		}
	}

	if n := optional(in.Notes); n != nil {
		if tooLong(*n, maxNotesLen) {
			v.Add(field("notes"), fmt.Sprintf("notes must be %d characters or less", maxNotesLen))
		}
		cmd.Notes = *n
	}

	if s := optional(in.Status); s != nil {
		st := models.StopStatus(*s)
		if !st.IsValid() {
			v.Add(field("status"), fmt.Sprintf("status must be one of %v", models.AllStopStatuses()))
		} else {
			cmd.Status = st
		}
	}

	return cmd
}

// ValidateStopStatus checks a raw status sent by the driver app.
func ValidateStopStatus(raw string) (models.StopStatus, apperr.Violations) {
	var v apperr.Violations
	st := models.StopStatus(strings.TrimSpace(raw))
	if st == "" {
		v.Add("status", "status is required")
	} else if !st.IsValid() {
		v.Add("status", fmt.Sprintf("status must be one of %v", models.AllStopStatuses()))
	}
	return st, v
}
