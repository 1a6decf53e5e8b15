package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/logger"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
)

// DriverTaskService builds the driver app's view of one working day.
type DriverTaskService struct {
	tasks   ports.TaskRepository
	catalog ports.CatalogRepository
	days    *now.Config
	clock   func() time.Time
}

func NewDriverTaskService(tasks ports.TaskRepository, catalog ports.CatalogRepository, loc *time.Location) *DriverTaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &DriverTaskService{
		tasks:   tasks,
		catalog: catalog,
		days:    &now.Config{WeekStartDay: time.Monday, TimeLocation: loc},
		clock:   time.Now,
	}
}

// ParseDay reads a YYYY-MM-DD day in the service time zone. Empty means today.
func (s *DriverTaskService) ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.clock().In(s.days.TimeLocation), nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, s.days.TimeLocation)
	if err != nil {
		var v apperr.Violations
		v.Add("day", "day must be formatted as YYYY-MM-DD")
		return time.Time{}, apperr.Invalid(v)
	}
	return d, nil
}

// TasksForDriver partitions the driver's stops dated on day into in-progress,
// assigned and completed, keeping batch, route and visit order within each bucket.
// Stops that were not delivered or were cancelled are left out.
func (s *DriverTaskService) TasksForDriver(ctx context.Context, driverID uuid.UUID, day time.Time) (tasks models.DriverTasks, err error) {
	defer logger.Time(ctx, "driver.tasks")(&err)

	if _, err := s.catalog.GetDriver(ctx, driverID); err != nil {
		return tasks, err
	}

	d := s.days.With(day.In(s.days.TimeLocation))
	from, to := d.BeginningOfDay(), d.EndOfDay()

	stops, err := s.tasks.ListDriverStops(ctx, driverID, from, to)
	if err != nil {
		return tasks, err
	}

	tasks = models.DriverTasks{
		DriverID:   driverID,
		Day:        from.Format("2006-01-02"),
		InProgress: []models.StopTask{},
		Assigned:   []models.StopTask{},
		Completed:  []models.StopTask{},
	}
	for _, st := range stops {
		switch st.Status {
		case models.StopStatusEnRoute:
			tasks.InProgress = append(tasks.InProgress, st)
		case models.StopStatusPending:
			tasks.Assigned = append(tasks.Assigned, st)
		case models.StopStatusDelivered:
			tasks.Completed = append(tasks.Completed, st)
		}
	}
	return tasks, nil
}
