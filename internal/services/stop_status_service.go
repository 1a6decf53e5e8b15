package services

import (
	"context"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/logger"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/validation"
)

// StopStatusService moves a single stop through its fulfillment states.
type StopStatusService struct {
	stops ports.StopRepository
	cache ports.Cache
}

func NewStopStatusService(stops ports.StopRepository, cache ports.Cache) *StopStatusService {
	return &StopStatusService{stops: stops, cache: cache}
}

// SetStatus applies raw to the stop when the transition is allowed. When actor is
// set, only stops on that driver's routes are visible.
func (s *StopStatusService) SetStatus(ctx context.Context, stopID uint, raw string, actor *uuid.UUID) (task models.StopTask, err error) {
	defer logger.Time(ctx, "stops.set_status")(&err)

	next, v := validation.ValidateStopStatus(raw)
	if !v.Empty() {
		return task, apperr.Invalid(v)
	}

	if actor != nil {
		current, err := s.stops.GetStopTask(ctx, stopID)
		if err != nil {
			return task, err
		}
		if current.RouteDriverID != *actor {
			return task, apperr.NotFound("stop", stopID)
		}
	}

	task, err = s.stops.TransitionStopStatus(ctx, stopID, next, func(current models.StopStatus) error {
		if !current.CanTransitionTo(next) {
			return &apperr.TransitionError{From: current.String(), To: next.String()}
		}
		return nil
	})
	if err != nil {
		return task, err
	}

	if err := s.cache.Delete(ctx, ReportKey(task.RouteID)); err != nil {
		cacheWarn(err, "Failed to invalidate route report")
	}
	return task, nil
}
