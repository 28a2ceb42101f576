package models

import "gorm.io/gorm"

// Laundry status values.
const (
	LaundryActive    = "ACTIVE"
	LaundrySuspended = "SUSPENDED"
	LaundryClosed    = "CLOSED"
)

// Laundry is a tenant on the platform: one shop with its own admin,
// staff, products and orders.
type Laundry struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Address     string  `gorm:"size:500" json:"address"`
	City        string  `gorm:"size:100;index" json:"city"`
	Phone       string  `gorm:"size:50" json:"phone"`
	Status      string  `gorm:"size:50;not null;default:ACTIVE" json:"status"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	WebhookURL  string  `gorm:"size:500" json:"-"` // notified on order updates

	Products []Product `json:"products,omitempty"`
	Staff    []User    `gorm:"foreignKey:LaundryID" json:"staff,omitempty"`
}

// Active reports whether the laundry can accept new orders.
func (l *Laundry) Active() bool { return l.Status == LaundryActive }
