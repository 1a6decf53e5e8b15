package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
)

type fixture struct {
	store  *MemoryStore
	driver models.DeliveryPerson
	client models.Client
	zone   models.Zone
	points []models.DropOffPoint
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{store: NewMemoryStore()}

	f.driver = models.DeliveryPerson{Name: "Luis"}
	require.NoError(t, f.store.CreateDriver(ctx, &f.driver))
	f.client = models.Client{Name: "Almacén Sur"}
	require.NoError(t, f.store.CreateClient(ctx, &f.client))
	f.zone = models.Zone{Name: "Norte"}
	require.NoError(t, f.store.CreateZone(ctx, &f.zone))

	for _, name := range []string{"B point", "A point"} {
		from, to := "08:00", "10:00"
		p := models.DropOffPoint{ClientID: f.client.ID, Name: name, TimeFrom: &from, TimeTo: &to}
		require.NoError(t, f.store.CreateDropOffPoint(ctx, &p))
		f.points = append(f.points, p)
	}
	return f
}

func (f fixture) route(day time.Time) *models.Route {
	return &models.Route{Date: day, DriverID: f.driver.ID, ClientID: &f.client.ID, ZoneID: f.zone.ID, Batch: 1}
}

func TestMemoryStoreCreateAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	r := f.route(day)
	require.NoError(t, f.store.CreateRoute(ctx, r, []models.Stop{
		{DropOffPointID: f.points[1].ID, VisitOrder: 9},
		{DropOffPointID: f.points[0].ID},
	}))
	require.Len(t, r.Stops, 2)
	assert.Equal(t, 0, r.Stops[0].VisitOrder)
	assert.Equal(t, 1, r.Stops[1].VisitOrder)
	assert.Equal(t, models.StopStatusPending, r.Stops[0].Status)

	detail, err := f.store.GetRouteDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis", detail.DriverName)
	assert.Equal(t, "Norte", detail.ZoneName)
	require.NotNil(t, detail.ClientName)
	assert.Equal(t, "Almacén Sur", *detail.ClientName)
	assert.Equal(t, 2, detail.StopCount)
	require.Len(t, detail.Stops, 2)
	assert.Equal(t, "A point", detail.Stops[0].DropOffName)
	assert.Equal(t, "08:00 - 10:00", *detail.Stops[0].DropOffTimeWindow)
	assert.Equal(t, f.driver.ID, detail.Stops[0].RouteDriverID)

	points, err := f.store.ListDropOffPointsForClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "A point", points[0].Name)
}

func TestMemoryStoreReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.route(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateRoute(ctx, r, []models.Stop{{DropOffPointID: f.points[0].ID}}))
	oldStop := r.Stops[0].ID

	r.Notes = "changed"
	require.NoError(t, f.store.ReplaceRoute(ctx, r, []models.Stop{
		{DropOffPointID: f.points[1].ID},
		{DropOffPointID: f.points[0].ID},
	}))

	_, err := f.store.GetStopTask(ctx, oldStop)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	detail, err := f.store.GetRouteDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", detail.Notes)
	require.Len(t, detail.Stops, 2)
	assert.Equal(t, f.points[1].ID, detail.Stops[0].DropOffPointID)

	require.NoError(t, f.store.DeleteRoute(ctx, r.ID))
	_, err = f.store.GetStopTask(ctx, detail.Stops[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, f.store.DeleteRoute(ctx, r.ID), apperr.ErrNotFound)

	missing := f.route(time.Now())
	missing.ID = 999
	assert.ErrorIs(t, f.store.ReplaceRoute(ctx, missing, nil), apperr.ErrNotFound)
}

func TestMemoryStoreFaultLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.route(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateRoute(ctx, r, []models.Stop{{DropOffPointID: f.points[0].ID}}))

	f.store.Fault = func(string) error { return errors.New("disk full") }
	err := f.store.ReplaceRoute(ctx, r, nil)
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)

	f.store.Fault = nil
	detail, err := f.store.GetRouteDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Stops, 1)
}

func TestMemoryStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	key := "req-1"
	r := f.route(time.Now())
	r.IdempotencyKey = &key
	require.NoError(t, f.store.CreateRoute(ctx, r, nil))

	dup := f.route(time.Now())
	dup.IdempotencyKey = &key
	assert.ErrorIs(t, f.store.CreateRoute(ctx, dup, nil), apperr.ErrConflict)

	found, err := f.store.FindRouteByIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, r.ID, found.ID)

	id := "30111222"
	require.NoError(t, f.store.CreateDriver(ctx, &models.DeliveryPerson{Name: "A", Identification: &id}))
	assert.ErrorIs(t, f.store.CreateDriver(ctx, &models.DeliveryPerson{Name: "B", Identification: &id}), apperr.ErrConflict)
}

func TestMemoryStoreListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d1 := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	for _, r := range []*models.Route{f.route(d1), f.route(d2)} {
		require.NoError(t, f.store.CreateRoute(ctx, r, nil))
	}

	all, err := f.store.ListRoutes(ctx, models.RouteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Date.Equal(d2))

	only, err := f.store.ListRoutes(ctx, models.RouteFilter{From: &d1, To: &d1, DriverID: &f.driver.ID})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.True(t, only[0].Date.Equal(d1))
}

func TestMemoryStoreRouteWithoutPrincipalClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.route(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	r.ClientID = nil
	require.NoError(t, f.store.CreateRoute(ctx, r, nil))
	assert.False(t, r.HasPrincipalClient())

	detail, err := f.store.GetRouteDetail(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.ClientID)
	assert.Nil(t, detail.ClientName)
	assert.Empty(t, detail.Stops)
}
