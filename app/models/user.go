package models

import "gorm.io/gorm"

// Role values assignable to a user.
const (
	RoleCustomer    = "CUSTOMER"
	RoleAdmin       = "ADMIN"
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleDeliveryGuy = "DELIVERY_GUY"
)

// User is anyone who can sign in: customers, laundry admins, platform
// super admins and delivery staff. Admins and delivery staff belong to a
// laundry via LaundryID; customers and super admins do not.
type User struct {
	gorm.Model
	Name             string `gorm:"size:255;not null" json:"name"`
	Email            string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password         string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Phone            string `gorm:"size:50" json:"phone"`
	Role             string `gorm:"size:50;not null;default:CUSTOMER" json:"role"`
	LaundryID        *uint  `gorm:"index" json:"laundry_id,omitempty"`
	Suspended        bool   `gorm:"not null;default:false" json:"suspended"`
	SuspensionReason string `gorm:"size:500" json:"suspension_reason,omitempty"`

	Addresses []Address `json:"addresses,omitempty"`
}

// IsStaff reports whether the user works for a laundry.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleDeliveryGuy
}

// Address is a saved delivery address belonging to a customer.
type Address struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Label   string `gorm:"size:100" json:"label"` // "home", "office"
	Line1   string `gorm:"size:255;not null" json:"line1"`
	Line2   string `gorm:"size:255" json:"line2"`
	City    string `gorm:"size:100;not null" json:"city"`
	Zip     string `gorm:"size:20" json:"zip"`
	Default bool   `gorm:"not null;default:false" json:"default"`
}
