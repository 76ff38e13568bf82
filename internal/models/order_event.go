package models

import (
	"time"
)

// OrderEventKind names a lifecycle step recorded in the order journal
type OrderEventKind string

const (
	OrderEventBegun        OrderEventKind = "begun"
	OrderEventPizzaAdded   OrderEventKind = "pizza_added"
	OrderEventPizzaRemoved OrderEventKind = "pizza_removed"
	OrderEventValidated    OrderEventKind = "validated"
	OrderEventCancelled    OrderEventKind = "cancelled"
	OrderEventProcessed    OrderEventKind = "processed"
)

type OrderEvent struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	OrderID     string         `gorm:"index;not null" json:"order_id"`
	ClientEmail string         `gorm:"index;not null" json:"client_email"`
	Kind        OrderEventKind `gorm:"not null" json:"kind"`
	Pizza       string         `json:"pizza,omitempty"`
	Quantity    int            `json:"quantity,omitempty"`
	OccurredAt  time.Time      `gorm:"not null" json:"occurred_at"`
}

func (OrderEvent) TableName() string {
	return "order_events"
}
