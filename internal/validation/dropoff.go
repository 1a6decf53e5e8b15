package validation

import (
	"fmt"
	"regexp"
	"strings"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
)

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// DropOffSubmission is a drop-off point ("cliente de reparto") as posted by the
// catalog screens.
type DropOffSubmission struct {
	ClientID string  `json:"client_id"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	TimeFrom *string `json:"time_from"`
	TimeTo   *string `json:"time_to"`
	Tariff   any     `json:"tariff"`
	Phone    *string `json:"phone"`
}

// ValidateDropOffPoint checks a drop-off submission. Time bounds are "HH:MM"; when
// both are given, from must not be later than to, reported against time_to.
func ValidateDropOffPoint(in DropOffSubmission) (models.DropOffPoint, apperr.Violations) {
	var (
		p models.DropOffPoint
		v apperr.Violations
	)

	if strings.TrimSpace(in.ClientID) == "" {
		v.Add("client_id", "client is required")
	} else if id, ok := parseUUID(in.ClientID); !ok {
		v.Add("client_id", "client must be a valid id")
	} else {
		p.ClientID = id
	}

	p.Name = strings.TrimSpace(in.Name)
	if p.Name == "" {
		v.Add("name", "name is required")
	} else if tooLong(p.Name, 255) {
		v.Add("name", "name must be 255 characters or less")
	}

	p.Address = optional(in.Address)
	if p.Address != nil && tooLong(*p.Address, 255) {
		v.Add("address", "address must be 255 characters or less")
	}

	p.TimeFrom = optional(in.TimeFrom)
	if p.TimeFrom != nil && !timeOfDay.MatchString(*p.TimeFrom) {
		v.Add("time_from", "time must be formatted as HH:MM")
	}
	p.TimeTo = optional(in.TimeTo)
	if p.TimeTo != nil && !timeOfDay.MatchString(*p.TimeTo) {
		v.Add("time_to", "time must be formatted as HH:MM")
	}
	// Zero-padded HH:MM values order lexically.
	if p.TimeFrom != nil && p.TimeTo != nil && !v.Has("time_from") && !v.Has("time_to") && *p.TimeFrom > *p.TimeTo {
		v.Add("time_to", "'from' time cannot be later than 'to' time")
	}

	if !isBlank(in.Tariff) {
		if f, ok := toFloat(in.Tariff); !ok {
			v.Add("tariff", "tariff must be a number")
		} else if f < 0 {
			v.Add("tariff", "tariff cannot be negative")
		} else if f > MaxMoney {
			v.Add("tariff", fmt.Sprintf("tariff must be at most %.2f", MaxMoney))
		} else {
			p.Tariff = &f
		}
	}

	p.Phone = optional(in.Phone)
	if p.Phone != nil && tooLong(*p.Phone, 20) {
		v.Add("phone", "phone must be 20 characters or less")
	}

	return p, v
}

// DeliveryPersonSubmission is a driver as posted by the catalog screens.
type DeliveryPersonSubmission struct {
	Name           string  `json:"name"`
	Identification *string `json:"identification"`
	Phone          *string `json:"phone"`
	Vehicle        *string `json:"vehicle"`
}

func ValidateDeliveryPerson(in DeliveryPersonSubmission) (models.DeliveryPerson, apperr.Violations) {
	var (
		d models.DeliveryPerson
		v apperr.Violations
	)

	d.Name = strings.TrimSpace(in.Name)
	if d.Name == "" {
		v.Add("name", "name is required")
	} else if tooLong(d.Name, 100) {
		v.Add("name", "name must be 100 characters or less")
	}

	limits := []struct {
		field string
		src   *string
		dst   **string
		max   int
	}{
		{"identification", in.Identification, &d.Identification, 50},
		{"phone", in.Phone, &d.Phone, 20},
		{"vehicle", in.Vehicle, &d.Vehicle, 100},
	}
	for _, l := range limits {
		*l.dst = optional(l.src)
		if *l.dst != nil && tooLong(**l.dst, l.max) {
			v.Add(l.field, fmt.Sprintf("%s must be %d characters or less", l.field, l.max))
		}
	}

	return d, v
}
