// Package repository implements the storage ports on gorm/postgres and in memory.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
)

const (
	dateLayout     = "2006-01-02"
	stopBatchSize  = 100
	lockForUpdate  = "UPDATE"
	summaryColumns = `r.id, r.date, r.driver_id, d.name AS driver_name, r.client_id, c.name AS client_name,
		r.zone_id, z.name AS zone_name, r.batch, r.notes, r.status,
		(SELECT COUNT(*) FROM stops st WHERE st.route_id = r.id) AS stop_count`
	stopTaskColumns = `s.id, s.route_id, s.drop_off_point_id, s.visit_order, s.amount, s.notes, s.status,
		p.name AS drop_off_name, p.address AS drop_off_address, p.time_from AS drop_off_time_from,
		p.time_to AS drop_off_time_to, p.phone AS drop_off_phone,
		r.date AS route_date, r.notes AS route_notes, r.batch AS route_batch, r.driver_id AS route_driver_id`
)

// GormStore is the postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

var _ ports.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateRoute(ctx context.Context, route *models.Route, stops []models.Stop) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(route).Error; err != nil {
			return fmt.Errorf("insert route: %w", err)
		}
		inserted, err := insertStops(tx, route.ID, stops)
		if err != nil {
			return err
		}
		route.Stops = inserted
		return nil
	})
	return translate("create route", err)
}

func (s *GormStore) ReplaceRoute(ctx context.Context, route *models.Route, stops []models.Stop) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Route
		if err := forUpdate(tx).First(&current, route.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("route", route.ID)
			}
			return fmt.Errorf("lock route %d: %w", route.ID, err)
		}

		if err := tx.Model(&current).Updates(routeUpdates(route)).Error; err != nil {
			return fmt.Errorf("update route %d: %w", route.ID, err)
		}
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.Stop{}).Error; err != nil {
			return fmt.Errorf("delete stops of route %d: %w", route.ID, err)
		}
		inserted, err := insertStops(tx, route.ID, stops)
		if err != nil {
			return err
		}

		route.CreatedAt = current.CreatedAt
		route.UpdatedAt = current.UpdatedAt
		route.IdempotencyKey = current.IdempotencyKey
		route.Stops = inserted
		return nil
	})
	return translate("replace route", err)
}

// routeUpdates lists every editable column. A map so that a cleared client is
// written as NULL.
func routeUpdates(route *models.Route) map[string]any {
	return map[string]any{
		"date":      route.Date,
		"driver_id": route.DriverID,
		"client_id": route.ClientID,
		"zone_id":   route.ZoneID,
		"batch":     route.Batch,
		"notes":     route.Notes,
		"status":    route.Status,
	}
}

// insertStops numbers the stops by position and bulk inserts them.
func insertStops(tx *gorm.DB, routeID uint, stops []models.Stop) ([]models.Stop, error) {
	if len(stops) == 0 {
		return []models.Stop{}, nil
	}
	rows := make([]models.Stop, len(stops))
	for i, st := range stops {
		st.ID = 0
		st.RouteID = routeID
		st.VisitOrder = i
		if st.Status == "" {
			st.Status = models.StopStatusPending
		}
		rows[i] = st
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, stopBatchSize).Error; err != nil {
		return nil, fmt.Errorf("insert stops of route %d: %w", routeID, err)
	}
	return rows, nil
}

func (s *GormStore) DeleteRoute(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", id).Delete(&models.Stop{}).Error; err != nil {
			return fmt.Errorf("delete stops of route %d: %w", id, err)
		}
		res := tx.Delete(&models.Route{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete route %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("route", id)
		}
		return nil
	})
	return translate("delete route", err)
}

func (s *GormStore) FindRouteByIdempotencyKey(ctx context.Context, key string) (models.Route, error) {
	var route models.Route
	err := s.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return route, apperr.NotFound("route with idempotency key", key)
	}
	return route, translate("find route by idempotency key", err)
}

func (s *GormStore) GetRouteDetail(ctx context.Context, id uint) (models.RouteDetail, error) {
	var detail models.RouteDetail
	db := s.db.WithContext(ctx)

	res := summaries(db).Where("r.id = ?", id).Limit(1).Scan(&detail.RouteSummary)
	if res.Error != nil {
		return detail, translate("get route", res.Error)
	}
	if res.RowsAffected == 0 {
		return detail, apperr.NotFound("route", id)
	}

	var stops []models.StopTask
	if err := routeStops(db, id).Scan(&stops).Error; err != nil {
		return detail, translate("get route stops", err)
	}
	detail.Stops = enrich(stops)
	return detail, nil
}

func (s *GormStore) ListRoutes(ctx context.Context, filter models.RouteFilter) ([]models.RouteSummary, error) {
	rows := []models.RouteSummary{}
	if err := listRoutes(s.db.WithContext(ctx), filter).Scan(&rows).Error; err != nil {
		return nil, translate("list routes", err)
	}
	return rows, nil
}

func (s *GormStore) TransitionStopStatus(ctx context.Context, id uint, next models.StopStatus, guard ports.StatusGuard) (models.StopTask, error) {
	var task models.StopTask
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stop models.Stop
		if err := forUpdate(tx).First(&stop, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("stop", id)
			}
			return fmt.Errorf("lock stop %d: %w", id, err)
		}
		if err := guard(stop.Status); err != nil {
			return err
		}
		if stop.Status != next {
			if err := tx.Model(&stop).Update("status", next).Error; err != nil {
				return fmt.Errorf("update stop %d: %w", id, err)
			}
		}

		var err error
		task, err = getStopTask(tx, id)
		return err
	})
	return task, translate("set stop status", err)
}

func (s *GormStore) GetStopTask(ctx context.Context, id uint) (models.StopTask, error) {
	task, err := getStopTask(s.db.WithContext(ctx), id)
	return task, translate("get stop", err)
}

func getStopTask(db *gorm.DB, id uint) (models.StopTask, error) {
	var task models.StopTask
	res := stopTasks(db).Where("s.id = ?", id).Limit(1).Scan(&task)
	if res.Error != nil {
		return task, fmt.Errorf("read stop %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return task, apperr.NotFound("stop", id)
	}
	task.Enrich()
	return task, nil
}

func (s *GormStore) ListDriverStops(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]models.StopTask, error) {
	var stops []models.StopTask
	if err := driverStops(s.db.WithContext(ctx), driverID, from, to).Scan(&stops).Error; err != nil {
		return nil, translate("list driver stops", err)
	}
	return enrich(stops), nil
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: lockForUpdate})
}

func listRoutes(db *gorm.DB, filter models.RouteFilter) *gorm.DB {
	q := summaries(db)
	if filter.From != nil {
		q = q.Where("r.date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where("r.date <= ?", filter.To.Format(dateLayout))
	}
	if filter.DriverID != nil {
		q = q.Where("r.driver_id = ?", *filter.DriverID)
	}
	return q.Order("r.date DESC, r.batch, r.id")
}

func routeStops(db *gorm.DB, routeID uint) *gorm.DB {
	return stopTasks(db).Where("s.route_id = ?", routeID).Order("s.visit_order")
}

// driverStops selects the driver's stops on routes dated within [from, to].
func driverStops(db *gorm.DB, driverID uuid.UUID, from, to time.Time) *gorm.DB {
	return stopTasks(db).
		Where("r.driver_id = ?", driverID).
		Where("r.date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("r.batch, r.id, s.visit_order")
}

func summaries(db *gorm.DB) *gorm.DB {
	return db.Table("routes AS r").
		Select(summaryColumns).
		Joins("JOIN delivery_people d ON d.id = r.driver_id").
		Joins("LEFT JOIN clients c ON c.id = r.client_id").
		Joins("JOIN zones z ON z.id = r.zone_id")
}

func stopTasks(db *gorm.DB) *gorm.DB {
	return db.Table("stops AS s").
		Select(stopTaskColumns).
		Joins("JOIN routes r ON r.id = s.route_id").
		Joins("JOIN drop_off_points p ON p.id = s.drop_off_point_id")
}

func enrich(stops []models.StopTask) []models.StopTask {
	if stops == nil {
		return []models.StopTask{}
	}
	for i := range stops {
		stops[i].Enrich()
	}
	return stops
}
