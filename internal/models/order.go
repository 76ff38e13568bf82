package models

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderCreated   OrderStatus = "CREATED"
	OrderValidated OrderStatus = "VALIDATED"
	OrderProcessed OrderStatus = "PROCESSED"
)

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Transitions only move forward one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderCreated:
		return next == OrderValidated
	case OrderValidated:
		return next == OrderProcessed
	default:
		return false
	}
}

// Order is a snapshot of a client's basket. Pizzas repeat once per unit ordered.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Owner     string      `json:"owner"`
	Pizzas    []string    `json:"pizzas"`
	Status    OrderStatus `json:"status"`
}
