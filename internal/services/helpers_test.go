package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"reparto_tracker/internal/cache"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/repository"
	"reparto_tracker/internal/validation"
)

var testDay = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

type env struct {
	store   *repository.MemoryStore
	cache   ports.Cache
	routes  *RouteService
	stops   *StopStatusService
	tasks   *DriverTaskService
	reports *ReportService
	catalog *CatalogService

	c1, c2     models.Client
	driver     models.DeliveryPerson
	other      models.DeliveryPerson
	zone       models.Zone
	d1, d2, d3 models.DropOffPoint
}

func newEnv(t *testing.T, c ports.Cache) *env {
	t.Helper()
	if c == nil {
		c = cache.Noop{}
	}
	ctx := context.Background()
	store := repository.NewMemoryStore()
	lookup := NewDropOffLookup(store)

	e := &env{
		store:   store,
		cache:   c,
		routes:  NewRouteService(store, store, lookup, c, time.Minute),
		stops:   NewStopStatusService(store, c),
		tasks:   NewDriverTaskService(store, store, time.UTC),
		reports: NewReportService(store, c, time.Minute),
		catalog: NewCatalogService(store, lookup),
	}

	e.c1 = models.Client{Name: "C1"}
	require.NoError(t, store.CreateClient(ctx, &e.c1))
	e.c2 = models.Client{Name: "C2"}
	require.NoError(t, store.CreateClient(ctx, &e.c2))
	e.driver = models.DeliveryPerson{Name: "Driver One"}
	require.NoError(t, store.CreateDriver(ctx, &e.driver))
	e.other = models.DeliveryPerson{Name: "Driver Two"}
	require.NoError(t, store.CreateDriver(ctx, &e.other))
	e.zone = models.Zone{Name: "Centro"}
	require.NoError(t, store.CreateZone(ctx, &e.zone))

	e.d1 = models.DropOffPoint{ClientID: e.c1.ID, Name: "D1"}
	require.NoError(t, store.CreateDropOffPoint(ctx, &e.d1))
	e.d2 = models.DropOffPoint{ClientID: e.c1.ID, Name: "D2"}
	require.NoError(t, store.CreateDropOffPoint(ctx, &e.d2))
	e.d3 = models.DropOffPoint{ClientID: e.c2.ID, Name: "D3"}
	require.NoError(t, store.CreateDropOffPoint(ctx, &e.d3))
	return e
}

func newRedis(t *testing.T) (ports.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ""), mr
}

func strPtr(s string) *string { return &s }

func stop(p models.DropOffPoint, amount any) validation.StopSubmission {
	return validation.StopSubmission{DropOffPointID: float64(p.ID), Amount: amount}
}

// submission builds a route for e.driver on testDay tied to client (nil for a
// general route).
func (e *env) submission(client *models.Client, stops ...validation.StopSubmission) validation.RouteSubmission {
	s := validation.RouteSubmission{
		Date:     testDay.Format("2006-01-02"),
		DriverID: e.driver.ID.String(),
		ZoneID:   float64(e.zone.ID),
		Batch:    float64(1),
		Status:   "pending",
		Stops:    stops,
	}
	if client != nil {
		s.ClientID = strPtr(client.ID.String())
	}
	return s
}

func (e *env) create(t *testing.T, in validation.RouteSubmission) models.RouteDetail {
	t.Helper()
	detail, created, err := e.routes.Create(context.Background(), in, "")
	require.NoError(t, err)
	require.True(t, created)
	return detail
}
