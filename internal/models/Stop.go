package models

import "time"

// Stop is one delivery within a route ("detalle de reparto").
// VisitOrder is zero-based and contiguous; it is assigned from the position of the
// stop in the submitted list and never edited directly.
type Stop struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RouteID        uint       `gorm:"not null;index:idx_stops_route_order,priority:1" json:"route_id"`
	DropOffPointID uint       `gorm:"not null;index" json:"dropoff_point_id"`
	VisitOrder     int        `gorm:"not null;default:0;index:idx_stops_route_order,priority:2" json:"visit_order"`
	Amount         *float64   `gorm:"type:numeric(10,2)" json:"amount"`
	Notes          string     `gorm:"type:text" json:"notes"`
	Status         StopStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	DropOffPoint DropOffPoint `gorm:"foreignKey:DropOffPointID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
