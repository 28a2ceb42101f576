package models

import "gorm.io/gorm"

// Product is a service a laundry offers, e.g. "Shirt wash & iron".
// Price is stored in the smallest currency unit.
type Product struct {
	gorm.Model
	LaundryID   uint   `gorm:"not null;index" json:"laundry_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100;index" json:"category"` // "wash", "dry_clean", "iron"
	Price       int64  `gorm:"not null" json:"price"`
	Unit        string `gorm:"size:50;default:piece" json:"unit"` // "piece", "kg"
	Available   bool   `gorm:"not null;default:true" json:"available"`
}
