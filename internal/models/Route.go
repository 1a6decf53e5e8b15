package models

import (
	"time"

	"github.com/google/uuid"
)

// Route is one planned delivery run ("reparto") for a date, driver, zone and batch.
// A route owns its stops. Routes are hard-deleted and their stops go with them
// through the FK cascade.
type Route struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Date     time.Time   `gorm:"type:date;not null;index" json:"date"`
	DriverID uuid.UUID   `gorm:"type:uuid;not null;index" json:"driver_id"`
	ClientID *uuid.UUID  `gorm:"type:uuid;index" json:"client_id"`
	ZoneID   uint        `gorm:"not null" json:"zone_id"`
	Batch    int         `gorm:"not null;default:1" json:"batch"`
	Notes    string      `gorm:"type:text" json:"notes"`
	Status   RouteStatus `gorm:"size:20;not null;default:pending" json:"status"`

	// IdempotencyKey is the caller-supplied key of the create request, if any.
	IdempotencyKey *string `gorm:"size:100;uniqueIndex" json:"-"`

	// Associations
	Driver DeliveryPerson `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Client *Client        `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Zone   Zone           `gorm:"foreignKey:ZoneID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Stops  []Stop         `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stops"`
}

// HasPrincipalClient reports whether the route is tied to a principal client.
func (r Route) HasPrincipalClient() bool {
	return r.ClientID != nil && *r.ClientID != uuid.Nil
}
