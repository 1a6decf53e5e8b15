package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
)

// MemoryStore is a process-local Store used by tests and by the "memory" storage
// mode. Every operation runs under one mutex, so multi-row writes are atomic.
type MemoryStore struct {
	mu sync.Mutex

	routes   map[uint]models.Route
	stops    map[uint]models.Stop
	drivers  map[uuid.UUID]models.DeliveryPerson
	clients  map[uuid.UUID]models.Client
	zones    map[uint]models.Zone
	dropoffs map[uint]models.DropOffPoint

	routeSeq, stopSeq, zoneSeq, dropoffSeq uint

	// Fault, when set, is consulted before every write. A non-nil result aborts the
	// write as a persistence failure.
	Fault func(op string) error
}

var _ ports.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		routes:   make(map[uint]models.Route),
		stops:    make(map[uint]models.Stop),
		drivers:  make(map[uuid.UUID]models.DeliveryPerson),
		clients:  make(map[uuid.UUID]models.Client),
		zones:    make(map[uint]models.Zone),
		dropoffs: make(map[uint]models.DropOffPoint),
	}
}

func (m *MemoryStore) fault(op string) error {
	if m.Fault == nil {
		return nil
	}
	if err := m.Fault(op); err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

func (m *MemoryStore) CreateRoute(ctx context.Context, route *models.Route, stops []models.Stop) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("create route"); err != nil {
		return err
	}
	if route.IdempotencyKey != nil {
		for _, r := range m.routes {
			if r.IdempotencyKey != nil && *r.IdempotencyKey == *route.IdempotencyKey {
				return fmt.Errorf("create route: %w", apperr.ErrConflict)
			}
		}
	}

	now := time.Now()
	m.routeSeq++
	route.ID = m.routeSeq
	route.CreatedAt, route.UpdatedAt = now, now
	if route.Status == "" {
		route.Status = models.RouteStatusPending
	}
	stored := *route
	stored.Stops = nil
	m.routes[route.ID] = stored
	route.Stops = m.insertStops(route.ID, stops, now)
	return nil
}

func (m *MemoryStore) ReplaceRoute(ctx context.Context, route *models.Route, stops []models.Stop) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.routes[route.ID]
	if !ok {
		return apperr.NotFound("route", route.ID)
	}
	if err := m.fault("replace route"); err != nil {
		return err
	}

	now := time.Now()
	route.CreatedAt = current.CreatedAt
	route.UpdatedAt = now
	route.IdempotencyKey = current.IdempotencyKey
	stored := *route
	stored.Stops = nil
	m.routes[route.ID] = stored

	for id, st := range m.stops {
		if st.RouteID == route.ID {
			delete(m.stops, id)
		}
	}
	route.Stops = m.insertStops(route.ID, stops, now)
	return nil
}

func (m *MemoryStore) insertStops(routeID uint, stops []models.Stop, now time.Time) []models.Stop {
	rows := make([]models.Stop, len(stops))
	for i, st := range stops {
		m.stopSeq++
		st.ID = m.stopSeq
		st.RouteID = routeID
		st.VisitOrder = i
		st.CreatedAt, st.UpdatedAt = now, now
		if st.Status == "" {
			st.Status = models.StopStatusPending
		}
		m.stops[st.ID] = st
		rows[i] = st
	}
	return rows
}

func (m *MemoryStore) DeleteRoute(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.routes[id]; !ok {
		return apperr.NotFound("route", id)
	}
	if err := m.fault("delete route"); err != nil {
		return err
	}
	delete(m.routes, id)
	for sid, st := range m.stops {
		if st.RouteID == id {
			delete(m.stops, sid)
		}
	}
	return nil
}

func (m *MemoryStore) FindRouteByIdempotencyKey(ctx context.Context, key string) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.routes {
		if r.IdempotencyKey != nil && *r.IdempotencyKey == key {
			return r, nil
		}
	}
	return models.Route{}, apperr.NotFound("route with idempotency key", key)
}

func (m *MemoryStore) GetRouteDetail(ctx context.Context, id uint) (models.RouteDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.routes[id]
	if !ok {
		return models.RouteDetail{}, apperr.NotFound("route", id)
	}
	return models.RouteDetail{RouteSummary: m.summary(r), Stops: m.routeStops(id)}, nil
}

func (m *MemoryStore) ListRoutes(ctx context.Context, filter models.RouteFilter) ([]models.RouteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := []models.RouteSummary{}
	for _, r := range m.routes {
		day := r.Date.Format(dateLayout)
		if filter.From != nil && day < filter.From.Format(dateLayout) {
			continue
		}
		if filter.To != nil && day > filter.To.Format(dateLayout) {
			continue
		}
		if filter.DriverID != nil && r.DriverID != *filter.DriverID {
			continue
		}
		rows = append(rows, m.summary(r))
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Batch != b.Batch {
			return a.Batch < b.Batch
		}
		return a.ID < b.ID
	})
	return rows, nil
}

func (m *MemoryStore) summary(r models.Route) models.RouteSummary {
	s := models.RouteSummary{
		ID:         r.ID,
		Date:       r.Date,
		DriverID:   r.DriverID,
		DriverName: m.drivers[r.DriverID].Name,
		ClientID:   r.ClientID,
		ZoneID:     r.ZoneID,
		ZoneName:   m.zones[r.ZoneID].Name,
		Batch:      r.Batch,
		Notes:      r.Notes,
		Status:     r.Status,
	}
	if r.HasPrincipalClient() {
		if c, ok := m.clients[*r.ClientID]; ok {
			name := c.Name
			s.ClientName = &name
		}
	}
	for _, st := range m.stops {
		if st.RouteID == r.ID {
			s.StopCount++
		}
	}
	return s
}

func (m *MemoryStore) routeStops(routeID uint) []models.StopTask {
	tasks := []models.StopTask{}
	for _, st := range m.stops {
		if st.RouteID == routeID {
			tasks = append(tasks, m.task(st))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].VisitOrder < tasks[j].VisitOrder })
	return tasks
}

func (m *MemoryStore) task(st models.Stop) models.StopTask {
	r := m.routes[st.RouteID]
	p := m.dropoffs[st.DropOffPointID]
	t := models.StopTask{
		ID:              st.ID,
		RouteID:         st.RouteID,
		DropOffPointID:  st.DropOffPointID,
		VisitOrder:      st.VisitOrder,
		Amount:          st.Amount,
		Notes:           st.Notes,
		Status:          st.Status,
		DropOffName:     p.Name,
		DropOffAddress:  p.Address,
		DropOffTimeFrom: p.TimeFrom,
		DropOffTimeTo:   p.TimeTo,
		DropOffPhone:    p.Phone,
		RouteDate:       r.Date,
		RouteNotes:      r.Notes,
		RouteBatch:      r.Batch,
		RouteDriverID:   r.DriverID,
	}
	t.Enrich()
	return t
}

func (m *MemoryStore) TransitionStopStatus(ctx context.Context, id uint, next models.StopStatus, guard ports.StatusGuard) (models.StopTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.stops[id]
	if !ok {
		return models.StopTask{}, apperr.NotFound("stop", id)
	}
	if err := guard(st.Status); err != nil {
		return models.StopTask{}, err
	}
	if st.Status != next {
		if err := m.fault("set stop status"); err != nil {
			return models.StopTask{}, err
		}
		st.Status = next
		st.UpdatedAt = time.Now()
		m.stops[id] = st
	}
	return m.task(st), nil
}

func (m *MemoryStore) GetStopTask(ctx context.Context, id uint) (models.StopTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.stops[id]
	if !ok {
		return models.StopTask{}, apperr.NotFound("stop", id)
	}
	return m.task(st), nil
}

func (m *MemoryStore) ListDriverStops(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]models.StopTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lo, hi := from.Format(dateLayout), to.Format(dateLayout)
	tasks := []models.StopTask{}
	for _, st := range m.stops {
		r := m.routes[st.RouteID]
		day := r.Date.Format(dateLayout)
		if r.DriverID != driverID || day < lo || day > hi {
			continue
		}
		tasks = append(tasks, m.task(st))
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.RouteBatch != b.RouteBatch {
			return a.RouteBatch < b.RouteBatch
		}
		if a.RouteID != b.RouteID {
			return a.RouteID < b.RouteID
		}
		return a.VisitOrder < b.VisitOrder
	})
	return tasks, nil
}

func (m *MemoryStore) ListClients(ctx context.Context) ([]models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients := []models.Client{}
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

func (m *MemoryStore) ListDrivers(ctx context.Context) ([]models.DeliveryPerson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drivers := []models.DeliveryPerson{}
	for _, d := range m.drivers {
		drivers = append(drivers, d)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, nil
}

func (m *MemoryStore) ListZones(ctx context.Context) ([]models.Zone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	zones := []models.Zone{}
	for _, z := range m.zones {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })
	return zones, nil
}

func (m *MemoryStore) ListDropOffPointsForClient(ctx context.Context, clientID uuid.UUID) ([]models.DropOffPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	points := []models.DropOffPoint{}
	for _, p := range m.dropoffs {
		if p.ClientID == clientID {
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points, nil
}

func (m *MemoryStore) GetDropOffPoints(ctx context.Context, ids []uint) ([]models.DropOffPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	points := []models.DropOffPoint{}
	for _, id := range ids {
		if p, ok := m.dropoffs[id]; ok {
			points = append(points, p)
		}
	}
	return points, nil
}

func (m *MemoryStore) GetDriver(ctx context.Context, id uuid.UUID) (models.DeliveryPerson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drivers[id]
	if !ok {
		return d, apperr.NotFound("driver", id)
	}
	return d, nil
}

func (m *MemoryStore) GetClient(ctx context.Context, id uuid.UUID) (models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[id]
	if !ok {
		return c, apperr.NotFound("client", id)
	}
	return c, nil
}

func (m *MemoryStore) GetZone(ctx context.Context, id uint) (models.Zone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	z, ok := m.zones[id]
	if !ok {
		return z, apperr.NotFound("zone", id)
	}
	return z, nil
}

func (m *MemoryStore) CreateDriver(ctx context.Context, d *models.DeliveryPerson) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("create driver"); err != nil {
		return err
	}
	if d.Identification != nil {
		for _, other := range m.drivers {
			if other.Identification != nil && strings.EqualFold(*other.Identification, *d.Identification) {
				return fmt.Errorf("create driver: %w", apperr.ErrConflict)
			}
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	m.drivers[d.ID] = *d
	return nil
}

func (m *MemoryStore) CreateClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("create client"); err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	stored := *c
	stored.DropOffPoints = nil
	m.clients[c.ID] = stored
	return nil
}

func (m *MemoryStore) CreateZone(ctx context.Context, z *models.Zone) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("create zone"); err != nil {
		return err
	}
	m.zoneSeq++
	z.ID = m.zoneSeq
	z.CreatedAt, z.UpdatedAt = time.Now(), time.Now()
	m.zones[z.ID] = *z
	return nil
}

func (m *MemoryStore) CreateDropOffPoint(ctx context.Context, p *models.DropOffPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("create drop-off point"); err != nil {
		return err
	}
	if _, ok := m.clients[p.ClientID]; !ok {
		return apperr.Persistence("create drop-off point", fmt.Errorf("client %s does not exist", p.ClientID))
	}
	m.dropoffSeq++
	p.ID = m.dropoffSeq
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	m.dropoffs[p.ID] = *p
	return nil
}
