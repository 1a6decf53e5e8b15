package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/logger"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/validation"
)

// RouteService creates, replaces and deletes routes together with their stops.
type RouteService struct {
	routes  ports.RouteRepository
	catalog ports.CatalogRepository
	lookup  *DropOffLookup
	cache   ports.Cache
	listTTL time.Duration
}

func NewRouteService(routes ports.RouteRepository, catalog ports.CatalogRepository, lookup *DropOffLookup, cache ports.Cache, listTTL time.Duration) *RouteService {
	return &RouteService{routes: routes, catalog: catalog, lookup: lookup, cache: cache, listTTL: listTTL}
}

// Create validates the submission and stores the route with its stops in one
// transaction. A non-empty idempotencyKey makes retries return the route created by
// the first attempt; created is false in that case.
func (s *RouteService) Create(ctx context.Context, in validation.RouteSubmission, idempotencyKey string) (detail models.RouteDetail, created bool, err error) {
	defer logger.Time(ctx, "routes.create")(&err)

	key := strings.TrimSpace(idempotencyKey)
	if key != "" {
		if detail, ok, err := s.replay(ctx, key); err != nil || ok {
			return detail, false, err
		}
	}

	cmd, err := s.check(ctx, in)
	if err != nil {
		return detail, false, err
	}

	route, stops := buildRoute(cmd)
	if key != "" {
		route.IdempotencyKey = &key
	}
	if err := s.routes.CreateRoute(ctx, &route, stops); err != nil {
		// A concurrent request with the same key won the insert.
		if key != "" && errors.Is(err, apperr.ErrConflict) {
			if detail, ok, rerr := s.replay(ctx, key); rerr == nil && ok {
				return detail, false, nil
			}
		}
		return detail, false, err
	}
	s.invalidate(ctx, route.ID)

	detail, err = s.routes.GetRouteDetail(ctx, route.ID)
	return detail, true, err
}

func (s *RouteService) replay(ctx context.Context, key string) (models.RouteDetail, bool, error) {
	existing, err := s.routes.FindRouteByIdempotencyKey(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.RouteDetail{}, false, nil
	}
	if err != nil {
		return models.RouteDetail{}, false, err
	}
	detail, err := s.routes.GetRouteDetail(ctx, existing.ID)
	return detail, err == nil, err
}

// Update replaces the route fields and its whole stop list. The stored stops are only
// touched once the submission has passed every check.
func (s *RouteService) Update(ctx context.Context, id uint, in validation.RouteSubmission) (detail models.RouteDetail, err error) {
	defer logger.Time(ctx, "routes.update")(&err)

	cmd, err := s.check(ctx, in)
	if err != nil {
		return detail, err
	}

	route, stops := buildRoute(cmd)
	route.ID = id
	if err := s.routes.ReplaceRoute(ctx, &route, stops); err != nil {
		return detail, err
	}
	s.invalidate(ctx, id)

	return s.routes.GetRouteDetail(ctx, id)
}

func (s *RouteService) Delete(ctx context.Context, id uint) (err error) {
	defer logger.Time(ctx, "routes.delete")(&err)

	if err := s.routes.DeleteRoute(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *RouteService) Get(ctx context.Context, id uint) (models.RouteDetail, error) {
	return s.routes.GetRouteDetail(ctx, id)
}

// List returns the planner listing, served from the cache while no route changed.
func (s *RouteService) List(ctx context.Context, filter models.RouteFilter) ([]models.RouteSummary, error) {
	gen, err := s.cache.Generation(ctx, routeListNamespace)
	if err != nil {
		cacheWarn(err, "Failed to read route list generation")
		return s.routes.ListRoutes(ctx, filter)
	}

	key := listKey(gen, filter)
	var rows []models.RouteSummary
	if ok, err := s.cache.Get(ctx, key, &rows); err != nil {
		cacheWarn(err, "Failed to read cached route list")
	} else if ok {
		return rows, nil
	}

	rows, err = s.routes.ListRoutes(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, rows, s.listTTL); err != nil {
		cacheWarn(err, "Failed to cache route list")
	}
	return rows, nil
}

// check runs the pure validation and then the reference checks that need the store.
func (s *RouteService) check(ctx context.Context, in validation.RouteSubmission) (validation.RouteCommand, error) {
	cmd, v := validation.ValidateRoute(in)
	if !v.Empty() {
		return cmd, apperr.Invalid(v)
	}

	if _, err := s.catalog.GetDriver(ctx, cmd.DriverID); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return cmd, err
		}
		v.Add("driver_id", "driver does not exist")
	}
	if _, err := s.catalog.GetZone(ctx, cmd.ZoneID); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return cmd, err
		}
		v.Add("zone_id", "zone does not exist")
	}

	clientID := cmd.ClientID
	if clientID != nil {
		if _, err := s.catalog.GetClient(ctx, *clientID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return cmd, err
			}
			v.Add("client_id", "principal client does not exist")
			clientID = nil
		}
	}
	// Ownership can only be judged against a client that exists.
	if clientID != nil || cmd.ClientID == nil {
		if err := s.lookup.CheckStops(ctx, clientID, cmd.Stops, &v); err != nil {
			return cmd, err
		}
	}

	return cmd, apperr.Invalid(v)
}

func (s *RouteService) invalidate(ctx context.Context, routeID uint) {
	if err := s.cache.Bump(ctx, routeListNamespace); err != nil {
		cacheWarn(err, "Failed to invalidate route lists")
	}
	if err := s.cache.Delete(ctx, ReportKey(routeID)); err != nil {
		cacheWarn(err, "Failed to invalidate route report")
	}
}

func buildRoute(cmd validation.RouteCommand) (models.Route, []models.Stop) {
	route := models.Route{
		Date:     cmd.Date,
		DriverID: cmd.DriverID,
		ClientID: cmd.ClientID,
		ZoneID:   cmd.ZoneID,
		Batch:    cmd.Batch,
		Notes:    cmd.Notes,
		Status:   cmd.Status,
	}
	stops := make([]models.Stop, len(cmd.Stops))
	for i, st := range cmd.Stops {
		stops[i] = models.Stop{
			DropOffPointID: st.DropOffPointID,
			VisitOrder:     i,
			Amount:         st.Amount,
			Notes:          st.Notes,
			Status:         st.Status,
		}
	}
	return route, stops
}

// ParseRouteFilter reads the optional listing query values.
func ParseRouteFilter(date, driverID string) (models.RouteFilter, error) {
	var (
		f models.RouteFilter
		v apperr.Violations
	)
	if date = strings.TrimSpace(date); date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			v.Add("date", "date must be formatted as YYYY-MM-DD")
		} else {
			f.From, f.To = &d, &d
		}
	}
	if driverID = strings.TrimSpace(driverID); driverID != "" {
		id, err := uuid.Parse(driverID)
		if err != nil {
			v.Add("driver_id", "driver must be a valid id")
		} else {
			f.DriverID = &id
		}
	}
	return f, apperr.Invalid(v)
}
