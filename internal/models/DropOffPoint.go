package models

import (
	"time"

	"github.com/google/uuid"
)

// DropOffPoint is a recurring delivery location owned by exactly one client.
// TimeFrom and TimeTo hold "HH:MM" values of the preferred delivery window.
type DropOffPoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Address  *string   `gorm:"size:255" json:"address"`
	TimeFrom *string   `gorm:"size:5" json:"time_from"`
	TimeTo   *string   `gorm:"size:5" json:"time_to"`
	Tariff   *float64  `gorm:"type:numeric(10,2)" json:"tariff"`
	Phone    *string   `gorm:"size:20" json:"phone"`
}

// TimeWindow renders the preferred window as "HH:MM - HH:MM", or nil when unset.
func (d DropOffPoint) TimeWindow() *string {
	return FormatTimeWindow(d.TimeFrom, d.TimeTo)
}

// FormatTimeWindow joins optional window bounds the way the planner screens show them.
func FormatTimeWindow(from, to *string) *string {
	f, t := deref(from), deref(to)
	var s string
	switch {
	case f != "" && t != "":
		s = f + " - " + t
	case f != "":
		s = "from " + f
	case t != "":
		s = "until " + t
	default:
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
