package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Brand          string         `json:"brand"`
	CustomerPrice  float64        `gorm:"not null" json:"customer_price"`
	WholesalePrice float64        `json:"wholesale_price"`
	SalonPrice     float64        `json:"salon_price"`
	ImageURL       string         `json:"image_url"`
	Category       string         `gorm:"index" json:"category"`
	Description    string         `json:"description"`
	Benefits       []string       `gorm:"serializer:json" json:"benefits"`
	SuggestedUse   string         `json:"suggested_use"`
	Specifications map[string]any `gorm:"serializer:json" json:"specifications"`
	Stock          int            `json:"stock"`

	// Price is the list price that applies to the requesting viewer,
	// filled in at read time. Never persisted.
	Price float64 `gorm:"-" json:"price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
