package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Actor identifies which dashboard drives a transition.
type Actor string

const (
	ActorRestaurant Actor = "restaurant_partner"
	ActorDelivery   Actor = "delivery_partner"
)

// transitions is the full lifecycle: pending → confirmed → preparing →
// out_for_delivery → delivered, with cancelled reachable from confirmed
// only. Delivery partners may also pick up straight from confirmed when
// the kitchen has not marked preparing yet.
var transitions = map[OrderStatus]map[OrderStatus]Actor{
	StatusPending: {
		StatusConfirmed: ActorDelivery,
	},
	StatusConfirmed: {
		StatusPreparing:      ActorRestaurant,
		StatusCancelled:      ActorRestaurant,
		StatusOutForDelivery: ActorDelivery,
	},
	StatusPreparing: {
		StatusOutForDelivery: ActorDelivery,
	},
	StatusOutForDelivery: {
		StatusDelivered: ActorDelivery,
	},
}

// CanTransition validates a status change for the given actor. Terminal
// statuses reject every transition.
func CanTransition(from, to OrderStatus, actor Actor) error {
	if from.IsTerminal() {
		return fmt.Errorf("order is already %s", from)
	}
	next, ok := transitions[from]
	if !ok {
		return fmt.Errorf("no transitions from status %q", from)
	}
	allowed, ok := next[to]
	if !ok {
		return fmt.Errorf("cannot move order from %s to %s", from, to)
	}
	if allowed != actor {
		return fmt.Errorf("%s cannot move order from %s to %s", actor, from, to)
	}
	return nil
}

// DeliveryPayout is the flat per-delivery amount credited to the partner
// when an order is marked delivered.
const DeliveryPayout = 50.0

type Order struct {
	ID                uuid.UUID   `db:"id" json:"id"`
	UserID            *uuid.UUID  `db:"user_id" json:"user_id"`
	OutletID          *uuid.UUID  `db:"outlet_id" json:"outlet_id"`
	CustomerName      string      `db:"customer_name" json:"customer_name"`
	CustomerPhone     string      `db:"customer_phone" json:"customer_phone"`
	DeliveryAddress   string      `db:"delivery_address" json:"delivery_address"`
	TotalAmount       float64     `db:"total_amount" json:"total_amount"`
	Status            OrderStatus `db:"status" json:"status"`
	DeliveryPartnerID *uuid.UUID  `db:"delivery_partner_id" json:"delivery_partner_id"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`

	Items               []OrderItem `db:"-" json:"items,omitempty"`
	DeliveryPartnerName string      `db:"-" json:"delivery_partner_name,omitempty"`
}

type OrderItem struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	OrderID    uuid.UUID  `db:"order_id" json:"order_id"`
	MenuItemID *uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	OutletID   *uuid.UUID `db:"outlet_id" json:"outlet_id"`
	ItemName   string     `db:"item_name" json:"item_name"`
	Quantity   int        `db:"quantity" json:"quantity"`
	Price      float64    `db:"price" json:"price"`
}
