// internal/models/driver.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryPerson is a driver ("repartidor"). Identification is unique across drivers
// when present.
type DeliveryPerson struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Identification *string   `gorm:"size:50;uniqueIndex" json:"identification"`
	Phone          *string   `gorm:"size:20" json:"phone"`
	Vehicle        *string   `gorm:"size:100" json:"vehicle"`
}

func (DeliveryPerson) TableName() string {
	return "delivery_people"
}

func (d *DeliveryPerson) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
