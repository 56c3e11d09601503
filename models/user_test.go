package models

import "testing"

func TestResolvePrimaryView(t *testing.T) {
	tests := []struct {
		name       string
		roles      []Role
		wantView   View
		wantToggle bool
	}{
		{"no roles", nil, ViewNone, false},
		{"customer only", []Role{RoleCustomer}, ViewCustomer, false},
		{"delivery only", []Role{RoleDeliveryPartner}, ViewDelivery, false},
		{"restaurant only", []Role{RoleRestaurantPartner}, ViewRestaurant, false},
		{"admin only", []Role{RoleAdmin}, ViewAdmin, false},
		{"customer plus delivery gets toggle", []Role{RoleCustomer, RoleDeliveryPartner}, ViewCustomer, true},
		{"order does not matter", []Role{RoleDeliveryPartner, RoleCustomer}, ViewCustomer, true},
		{"restaurant beats customer", []Role{RoleCustomer, RoleRestaurantPartner}, ViewRestaurant, false},
		{"restaurant beats delivery combo", []Role{RoleCustomer, RoleDeliveryPartner, RoleRestaurantPartner}, ViewRestaurant, false},
		{"unknown role alone", []Role{Role("moderator")}, ViewNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePrimaryView(tt.roles)
			if got.View != tt.wantView || got.DeliveryToggle != tt.wantToggle {
				t.Errorf("ResolvePrimaryView(%v) = %+v, want view %s toggle %v",
					tt.roles, got, tt.wantView, tt.wantToggle)
			}
		})
	}
}

// Admin must win regardless of which other roles are present.
func TestAdminAlwaysWins(t *testing.T) {
	others := [][]Role{
		nil,
		{RoleCustomer},
		{RoleDeliveryPartner},
		{RoleRestaurantPartner},
		{RoleCustomer, RoleDeliveryPartner},
		{RoleCustomer, RoleDeliveryPartner, RoleRestaurantPartner},
	}

	for _, extra := range others {
		roles := append([]Role{RoleAdmin}, extra...)
		got := ResolvePrimaryView(roles)
		if got.View != ViewAdmin {
			t.Errorf("ResolvePrimaryView(%v) = %s, want admin", roles, got.View)
		}
		if got.DeliveryToggle {
			t.Errorf("ResolvePrimaryView(%v) set the delivery toggle on the admin view", roles)
		}
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleRestaurantPartner, RoleDeliveryPartner, RoleCustomer} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("superuser").IsValid() {
		t.Error("unknown role should be invalid")
	}
}
