package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reparto_tracker/internal/models"
)

func strPtr(s string) *string { return &s }

func validSubmission() RouteSubmission {
	return RouteSubmission{
		Date:     "2026-10-19",
		DriverID: uuid.NewString(),
		ZoneID:   float64(3),
		Batch:    "2",
		Status:   "pending",
		Notes:    strPtr("  morning run  "),
		Stops: []StopSubmission{
			{DropOffPointID: float64(10), Amount: "12.50"},
			{DropOffPointID: "11", Amount: nil, Status: strPtr("en_route")},
		},
	}
}

func TestValidateRouteAccepts(t *testing.T) {
	cmd, v := ValidateRoute(validSubmission())
	require.True(t, v.Empty(), "%v", v)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), cmd.Date)
	assert.Equal(t, uint(3), cmd.ZoneID)
	assert.Equal(t, 2, cmd.Batch)
	assert.Equal(t, models.RouteStatusPending, cmd.Status)
	assert.Equal(t, "morning run", cmd.Notes)
	assert.Nil(t, cmd.ClientID)

	require.Len(t, cmd.Stops, 2)
	assert.Equal(t, uint(10), cmd.Stops[0].DropOffPointID)
	require.NotNil(t, cmd.Stops[0].Amount)
	assert.InDelta(t, 12.5, *cmd.Stops[0].Amount, 0.0001)
	assert.Equal(t, models.StopStatusPending, cmd.Stops[0].Status)
	assert.Nil(t, cmd.Stops[1].Amount)
	assert.Equal(t, models.StopStatusEnRoute, cmd.Stops[1].Status)
}

func TestValidateRouteAcceptsRFC3339Date(t *testing.T) {
	s := validSubmission()
	s.Date = "2026-10-19T22:30:00-03:00"
	cmd, v := ValidateRoute(s)
	require.True(t, v.Empty(), "%v", v)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), cmd.Date)
}

func TestValidateRouteRequiredFields(t *testing.T) {
	_, v := ValidateRoute(RouteSubmission{})
	for _, f := range []string{"date", "driver_id", "zone_id", "batch", "status"} {
		assert.True(t, v.Has(f), "expected violation on %s", f)
	}
	assert.False(t, v.Has("stops"))
}

func TestValidateRouteBatch(t *testing.T) {
	tests := []struct {
		name  string
		batch any
		ok    bool
		want  int
	}{
		{"number", float64(1), true, 1},
		{"numeric string", "4", true, 4},
		{"leading zero", "08", true, 8},
		{"decimal string", "010", true, 10},
		{"whole float string", "3.0", true, 3},
		{"fractional", float64(2.7), false, 0},
		{"fractional string", "2.7", false, 0},
		{"hex string", "0x10", false, 0},
		{"zero", float64(0), false, 0},
		{"negative string", "-1", false, 0},
		{"not a number", "abc", false, 0},
		{"boolean", true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.Batch = tt.batch
			cmd, v := ValidateRoute(s)
			assert.Equal(t, !tt.ok, v.Has("batch"))
			if tt.ok {
				assert.Equal(t, tt.want, cmd.Batch)
			}
		})
	}
}

func TestValidateRouteIDsAreBase10(t *testing.T) {
	s := validSubmission()
	s.ZoneID = "010"
	s.Stops = []StopSubmission{
		{DropOffPointID: "010"},
		{DropOffPointID: "08"},
		{DropOffPointID: "2.7"},
		{DropOffPointID: float64(2.7)},
	}

	cmd, v := ValidateRoute(s)
	assert.False(t, v.Has("zone_id"))
	assert.Equal(t, uint(10), cmd.ZoneID)
	require.Len(t, cmd.Stops, 4)
	assert.Equal(t, uint(10), cmd.Stops[0].DropOffPointID)
	assert.Equal(t, uint(8), cmd.Stops[1].DropOffPointID)
	assert.True(t, v.Has("stops.2.dropoff_point_id"))
	assert.True(t, v.Has("stops.3.dropoff_point_id"))
	assert.False(t, v.Has("stops.0.dropoff_point_id"))
	assert.False(t, v.Has("stops.1.dropoff_point_id"))
}

func TestValidateRouteStopAmountBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		ok     bool
	}{
		{"zero", float64(0), true},
		{"largest storable", MaxMoney, true},
		{"overflows column", float64(1e9), false},
		{"overflows column as string", "100000000", false},
		{"not a number", "NaN", false},
		{"infinite", "Inf", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.Stops = []StopSubmission{{DropOffPointID: float64(1), Amount: tt.amount}}
			_, v := ValidateRoute(s)
			assert.Equal(t, !tt.ok, v.Has("stops.0.amount"), "%v", v)
		})
	}
}

func TestValidateRouteInvalidValues(t *testing.T) {
	s := validSubmission()
	s.Date = "19/10/2026"
	s.DriverID = "not-a-uuid"
	s.ClientID = strPtr("also-bad")
	s.ZoneID = "zero"
	s.Status = "lost"
	s.Notes = strPtr(strings.Repeat("x", 501))

	_, v := ValidateRoute(s)
	for _, f := range []string{"date", "driver_id", "client_id", "zone_id", "status", "notes"} {
		assert.True(t, v.Has(f), "expected violation on %s", f)
	}
}

func TestValidateRouteNotesAtLimit(t *testing.T) {
	s := validSubmission()
	s.Notes = strPtr(strings.Repeat("ñ", 500))
	_, v := ValidateRoute(s)
	assert.False(t, v.Has("notes"))
}

func TestValidateRouteClientWithoutStops(t *testing.T) {
	s := validSubmission()
	s.ClientID = strPtr(uuid.NewString())
	s.Stops = nil

	_, v := ValidateRoute(s)
	require.Len(t, v, 1)
	assert.Equal(t, "stops", v[0].Field)
}

func TestValidateRouteWithoutClientAllowsNoStops(t *testing.T) {
	s := validSubmission()
	s.ClientID = strPtr("")
	s.Stops = []StopSubmission{}

	cmd, v := ValidateRoute(s)
	assert.True(t, v.Empty(), "%v", v)
	assert.Nil(t, cmd.ClientID)
	assert.Empty(t, cmd.Stops)
}

func TestValidateRouteStopPaths(t *testing.T) {
	s := validSubmission()
	s.Stops = []StopSubmission{
		{DropOffPointID: float64(1)},
		{DropOffPointID: nil, Amount: "-3"},
		{DropOffPointID: "x", Amount: "ten", Notes: strPtr(strings.Repeat("n", 501)), Status: strPtr("lost")},
	}

	_, v := ValidateRoute(s)
	want := []string{
		"stops.1.dropoff_point_id",
		"stops.1.amount",
		"stops.2.dropoff_point_id",
		"stops.2.amount",
		"stops.2.notes",
		"stops.2.status",
	}
	var got []string
	for _, x := range v {
		got = append(got, x.Field)
	}
	assert.Equal(t, want, got)
}

func TestValidateStopStatus(t *testing.T) {
	st, v := ValidateStopStatus(" delivered ")
	assert.True(t, v.Empty())
	assert.Equal(t, models.StopStatusDelivered, st)

	_, v = ValidateStopStatus("")
	assert.True(t, v.Has("status"))

	_, v = ValidateStopStatus("teleported")
	assert.True(t, v.Has("status"))
}
