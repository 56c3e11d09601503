package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin             Role = "admin"
	RoleRestaurantPartner Role = "restaurant_partner"
	RoleDeliveryPartner   Role = "delivery_partner"
	RoleCustomer          Role = "customer"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleRestaurantPartner || r == RoleDeliveryPartner || r == RoleCustomer
}

type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Password   string     `db:"password" json:"-"`
	Roles      []UserRole `db:"-" json:"roles"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

type UserRole struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// View is the top-level dashboard a signed-in user lands on.
type View string

const (
	ViewAdmin      View = "admin"
	ViewRestaurant View = "restaurant_partner"
	ViewDelivery   View = "delivery_partner"
	ViewCustomer   View = "customer"
	ViewNone       View = "none"
)

// Session is the resolved routing decision for an authenticated user.
// DeliveryToggle is set when the user holds both the customer and the
// delivery_partner role and may switch between those dashboards.
type Session struct {
	View           View `json:"view"`
	DeliveryToggle bool `json:"delivery_toggle"`
}

// ResolvePrimaryView maps a user's role set to exactly one view with fixed
// precedence: admin, then restaurant_partner, then the customer+delivery
// combination (customer view with a toggle), then delivery_partner alone,
// then customer alone. No recognized role routes to onboarding.
func ResolvePrimaryView(roles []Role) Session {
	has := make(map[Role]bool, len(roles))
	for _, r := range roles {
		has[r] = true
	}

	switch {
	case has[RoleAdmin]:
		return Session{View: ViewAdmin}
	case has[RoleRestaurantPartner]:
		return Session{View: ViewRestaurant}
	case has[RoleDeliveryPartner] && has[RoleCustomer]:
		return Session{View: ViewCustomer, DeliveryToggle: true}
	case has[RoleDeliveryPartner]:
		return Session{View: ViewDelivery}
	case has[RoleCustomer]:
		return Session{View: ViewCustomer}
	default:
		return Session{View: ViewNone}
	}
}
