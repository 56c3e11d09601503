package models

import (
	"time"

	"github.com/google/uuid"
)

type PartnerApproval string

const (
	ApprovalPending  PartnerApproval = "pending"
	ApprovalApproved PartnerApproval = "approved"
	ApprovalRejected PartnerApproval = "rejected"
)

type RestaurantPartner struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	UserID         uuid.UUID       `db:"user_id" json:"user_id"`
	OutletID       *uuid.UUID      `db:"outlet_id" json:"outlet_id"`
	RestaurantName string          `db:"restaurant_name" json:"restaurant_name"`
	ContactPhone   *string         `db:"contact_phone" json:"contact_phone"`
	Status         PartnerApproval `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type PartnerStatus string

const (
	PartnerAvailable PartnerStatus = "available"
	PartnerBusy      PartnerStatus = "busy"
	PartnerOffline   PartnerStatus = "offline"
)

type DeliveryPartner struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	UserID            uuid.UUID     `db:"user_id" json:"user_id"`
	Name              string        `db:"name" json:"name"`
	Phone             *string       `db:"phone" json:"phone"`
	VehicleType       *string       `db:"vehicle_type" json:"vehicle_type"`
	Status            PartnerStatus `db:"status" json:"status"`
	IsAcceptingOrders bool          `db:"is_accepting_orders" json:"is_accepting_orders"`
	TotalDeliveries   int           `db:"total_deliveries" json:"total_deliveries"`
	Earnings          float64       `db:"earnings" json:"earnings"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
}

// StatusAfterDelivery is the partner status written when a delivery
// completes: back to available while still accepting orders, otherwise
// offline.
func (p DeliveryPartner) StatusAfterDelivery() PartnerStatus {
	if p.IsAcceptingOrders {
		return PartnerAvailable
	}
	return PartnerOffline
}

type CustomerProfile struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Age            *int      `db:"age" json:"age"`
	Gender         *string   `db:"gender" json:"gender"`
	City           *string   `db:"city" json:"city"`
	State          *string   `db:"state" json:"state"`
	Country        *string   `db:"country" json:"country"`
	MobileNumber   *string   `db:"mobile_number" json:"mobile_number"`
	MobileVerified bool      `db:"mobile_verified" json:"mobile_verified"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
