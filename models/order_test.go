package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		actor   Actor
		wantErr bool
	}{
		{"delivery accepts pending", StatusPending, StatusConfirmed, ActorDelivery, false},
		{"restaurant cannot accept pending", StatusPending, StatusConfirmed, ActorRestaurant, true},
		{"restaurant starts preparing", StatusConfirmed, StatusPreparing, ActorRestaurant, false},
		{"restaurant cancels confirmed", StatusConfirmed, StatusCancelled, ActorRestaurant, false},
		{"delivery picks up from confirmed", StatusConfirmed, StatusOutForDelivery, ActorDelivery, false},
		{"delivery picks up from preparing", StatusPreparing, StatusOutForDelivery, ActorDelivery, false},
		{"delivery cannot cancel", StatusConfirmed, StatusCancelled, ActorDelivery, true},
		{"restaurant cannot pick up", StatusPreparing, StatusOutForDelivery, ActorRestaurant, true},
		{"delivery completes", StatusOutForDelivery, StatusDelivered, ActorDelivery, false},
		{"cannot skip to delivered", StatusConfirmed, StatusDelivered, ActorDelivery, true},
		{"cannot cancel preparing", StatusPreparing, StatusCancelled, ActorRestaurant, true},
		{"cannot move backwards", StatusPreparing, StatusConfirmed, ActorRestaurant, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanTransition(%s, %s, %s) error = %v, wantErr %v",
					tt.from, tt.to, tt.actor, err, tt.wantErr)
			}
		})
	}
}

// Delivered and cancelled orders must never move again, no matter who asks.
func TestTerminalStatusesRejectAllTransitions(t *testing.T) {
	terminals := []OrderStatus{StatusDelivered, StatusCancelled}
	targets := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled}
	actors := []Actor{ActorRestaurant, ActorDelivery}

	for _, from := range terminals {
		if !from.IsTerminal() {
			t.Fatalf("%s should be terminal", from)
		}
		for _, to := range targets {
			for _, actor := range actors {
				if err := CanTransition(from, to, actor); err == nil {
					t.Errorf("CanTransition(%s, %s, %s) allowed a transition out of a terminal status",
						from, to, actor)
				}
			}
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("shipped").IsValid() {
		t.Error("unknown status should be invalid")
	}
}
