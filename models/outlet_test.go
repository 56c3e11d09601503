package models

import "testing"

func TestDisplayRating(t *testing.T) {
	tests := []struct {
		name      string
		fallback  float64
		overall   []int
		wantAvg   float64
		wantCount int
	}{
		{"no ratings uses fallback", 4.0, nil, 4.0, 0},
		{"single rating", 4.0, []int{5}, 5.0, 1},
		{"averages across rows", 4.0, []int{5, 4, 3}, 4.0, 3},
		{"low ratings override fallback", 4.5, []int{1, 2}, 1.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := DisplayRating(tt.fallback, tt.overall)
			if avg != tt.wantAvg || count != tt.wantCount {
				t.Errorf("DisplayRating(%v, %v) = (%v, %d), want (%v, %d)",
					tt.fallback, tt.overall, avg, count, tt.wantAvg, tt.wantCount)
			}
		})
	}
}

func TestStatusAfterDelivery(t *testing.T) {
	accepting := DeliveryPartner{IsAcceptingOrders: true}
	if got := accepting.StatusAfterDelivery(); got != PartnerAvailable {
		t.Errorf("accepting partner should return to %s, got %s", PartnerAvailable, got)
	}

	paused := DeliveryPartner{IsAcceptingOrders: false}
	if got := paused.StatusAfterDelivery(); got != PartnerOffline {
		t.Errorf("paused partner should go %s, got %s", PartnerOffline, got)
	}
}
