package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDropOffPoint(t *testing.T) {
	clientID := uuid.New()
	p, v := ValidateDropOffPoint(DropOffSubmission{
		ClientID: clientID.String(),
		Name:     " Kiosco Centro ",
		Address:  strPtr(""),
		TimeFrom: strPtr("08:00"),
		TimeTo:   strPtr("12:30"),
		Tariff:   "1500",
	})
	require.True(t, v.Empty(), "%v", v)
	assert.Equal(t, clientID, p.ClientID)
	assert.Equal(t, "Kiosco Centro", p.Name)
	assert.Nil(t, p.Address)
	require.NotNil(t, p.Tariff)
	assert.Equal(t, 1500.0, *p.Tariff)
	assert.Equal(t, "08:00 - 12:30", *p.TimeWindow())
}

func TestValidateDropOffPointFields(t *testing.T) {
	_, v := ValidateDropOffPoint(DropOffSubmission{
		ClientID: "nope",
		Name:     "",
		Address:  strPtr(strings.Repeat("a", 256)),
		TimeFrom: strPtr("8:00"),
		TimeTo:   strPtr("24:00"),
		Tariff:   "-1",
		Phone:    strPtr(strings.Repeat("1", 21)),
	})
	for _, f := range []string{"client_id", "name", "address", "time_from", "time_to", "tariff", "phone"} {
		assert.True(t, v.Has(f), "expected violation on %s", f)
	}
}

// Every well-formed pair is rejected exactly when from is later than to, and the
// violation lands on time_to.
func TestValidateDropOffPointWindowOrder(t *testing.T) {
	times := []string{"00:00", "07:59", "08:00", "12:30", "13:05", "23:59"}
	for _, from := range times {
		for _, to := range times {
			t.Run(fmt.Sprintf("%s-%s", from, to), func(t *testing.T) {
				_, v := ValidateDropOffPoint(DropOffSubmission{
					ClientID: uuid.NewString(),
					Name:     "Point",
					TimeFrom: strPtr(from),
					TimeTo:   strPtr(to),
				})
				assert.Equal(t, from > to, v.Has("time_to"))
				assert.False(t, v.Has("time_from"))
			})
		}
	}
}

func TestValidateDropOffPointSingleBound(t *testing.T) {
	p, v := ValidateDropOffPoint(DropOffSubmission{
		ClientID: uuid.NewString(),
		Name:     "Point",
		TimeTo:   strPtr("18:00"),
	})
	require.True(t, v.Empty())
	assert.Equal(t, "until 18:00", *p.TimeWindow())
}

func TestValidateDeliveryPerson(t *testing.T) {
	d, v := ValidateDeliveryPerson(DeliveryPersonSubmission{
		Name:           "Ana Gómez",
		Identification: strPtr(" 30111222 "),
		Phone:          strPtr(""),
	})
	require.True(t, v.Empty(), "%v", v)
	assert.Equal(t, "Ana Gómez", d.Name)
	assert.Equal(t, "30111222", *d.Identification)
	assert.Nil(t, d.Phone)
	assert.Nil(t, d.Vehicle)

	_, v = ValidateDeliveryPerson(DeliveryPersonSubmission{
		Name:           strings.Repeat("n", 101),
		Identification: strPtr(strings.Repeat("9", 51)),
		Phone:          strPtr(strings.Repeat("1", 21)),
		Vehicle:        strPtr(strings.Repeat("v", 101)),
	})
	for _, f := range []string{"name", "identification", "phone", "vehicle"} {
		assert.True(t, v.Has(f), "expected violation on %s", f)
	}
}

func TestValidateDropOffPointTariffFitsColumn(t *testing.T) {
	base := DropOffSubmission{ClientID: uuid.NewString(), Name: "Point"}

	base.Tariff = MaxMoney
	_, v := ValidateDropOffPoint(base)
	assert.False(t, v.Has("tariff"), "%v", v)

	base.Tariff = float64(1e9)
	_, v = ValidateDropOffPoint(base)
	assert.True(t, v.Has("tariff"))
}
