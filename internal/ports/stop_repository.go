package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reparto_tracker/internal/models"
)

// StatusGuard decides whether the locked stop may leave its current status.
type StatusGuard func(current models.StopStatus) error

// Port: single-stop reads and status changes.
type StopRepository interface {
	// Lock the stop, run guard against its current status and store next when the
	// guard passes. Returns the stop as it is after the change.
	TransitionStopStatus(ctx context.Context, id uint, next models.StopStatus, guard StatusGuard) (models.StopTask, error)
	GetStopTask(ctx context.Context, id uint) (models.StopTask, error)
}

// Port: the driver's view over stops.
type TaskRepository interface {
	// Enriched stops of the driver's routes dated within [from, to], ordered by batch,
	// route and visit order.
	ListDriverStops(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]models.StopTask, error)
}
