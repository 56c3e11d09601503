package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifyDeliveryAssigned   NotificationType = "delivery_assigned"
	NotifyRestaurantNotified NotificationType = "restaurant_notified"
	NotifyOrderAccepted      NotificationType = "order_accepted"
	NotifyOrderDelivered     NotificationType = "order_delivered"
)

type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"user_id"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"type" json:"type"`
	OrderID   *uuid.UUID       `db:"order_id" json:"order_id"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
