package models

import (
	"time"

	"github.com/google/uuid"
)

type Outlet struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	CuisineType  string    `db:"cuisine_type" json:"cuisine_type"`
	Rating       float64   `db:"rating" json:"rating"`
	DeliveryTime string    `db:"delivery_time" json:"delivery_time"`
	IsOpen       bool      `db:"is_open" json:"is_open"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Live aggregate over overall rating rows; zero-count means the static
	// Rating field is the one to display.
	LiveRating  float64 `db:"-" json:"live_rating"`
	RatingCount int     `db:"-" json:"rating_count"`
}

type MenuItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OutletID     uuid.UUID `db:"outlet_id" json:"outlet_id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	Category     string    `db:"category" json:"category"`
	IsVegetarian bool      `db:"is_vegetarian" json:"is_vegetarian"`
	IsAvailable  bool      `db:"is_available" json:"is_available"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	LiveRating  float64 `db:"-" json:"live_rating"`
	RatingCount int     `db:"-" json:"rating_count"`
}

type Rating struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	OrderID    uuid.UUID  `db:"order_id" json:"order_id"`
	OutletID   uuid.UUID  `db:"outlet_id" json:"outlet_id"`
	MenuItemID *uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	Rating     int        `db:"rating" json:"rating"`
	Review     *string    `db:"review" json:"review,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// DisplayRating picks the rating to show for an outlet: the arithmetic mean
// of overall (non item-scoped) rating rows when any exist, otherwise the
// outlet's static fallback.
func DisplayRating(fallback float64, overall []int) (float64, int) {
	if len(overall) == 0 {
		return fallback, 0
	}
	sum := 0
	for _, r := range overall {
		sum += r
	}
	return float64(sum) / float64(len(overall)), len(overall)
}
