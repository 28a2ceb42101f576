package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is one state in the order lifecycle.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusInProgress     OrderStatus = "IN_PROGRESS"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusCanceled       OrderStatus = "CANCELED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

// transitions is the full lifecycle graph. A status maps to the set of
// statuses an order may move to next. Statuses absent from the map are
// terminal. REFUNDED has no inbound edge here: refunds are written by
// the payment reconciliation flow, not by the status endpoint.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCanceled},
	StatusConfirmed:      {StatusInProgress, StatusCanceled},
	StatusInProgress:     {StatusReadyForPickup, StatusCanceled},
	StatusReadyForPickup: {StatusOutForDelivery, StatusCanceled},
	StatusOutForDelivery: {StatusDelivered, StatusCanceled},
	StatusDelivered:      {StatusCompleted},
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusReadyForPickup,
		StatusOutForDelivery, StatusDelivered, StatusCompleted, StatusCanceled,
		StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle permits moving from s to
// next. A status never transitions to itself.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer's order with one laundry.
type Order struct {
	gorm.Model
	Number     string      `gorm:"uniqueIndex;size:50;not null" json:"number"`
	CustomerID uint        `gorm:"not null;index" json:"customer_id"`
	LaundryID  uint        `gorm:"not null;index" json:"laundry_id"`
	AddressID  *uint       `json:"address_id,omitempty"`
	Status     OrderStatus `gorm:"size:50;not null;default:PENDING;index" json:"status"`
	Total      int64       `gorm:"not null;default:0" json:"total"`
	Notes      string      `gorm:"size:1000" json:"notes"`

	Customer User        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Laundry  Laundry     `json:"laundry,omitempty"`
	Items    []OrderItem `json:"items,omitempty"`
}

// OrderItem is one product line on an order. Price is copied from the
// product at order time so later price changes do not rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID   uint   `gorm:"not null;index" json:"order_id"`
	ProductID uint   `gorm:"not null" json:"product_id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"`

	Product Product `json:"product,omitempty"`
}

// OrderStatusLog is the audit trail: one row per status change, written
// in the same transaction as the order update.
type OrderStatusLog struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"size:50;not null" json:"from_status"`
	ToStatus   OrderStatus `gorm:"size:50;not null" json:"to_status"`
	ChangedBy  uint        `gorm:"not null" json:"changed_by"`
	Note       string      `gorm:"size:500" json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
