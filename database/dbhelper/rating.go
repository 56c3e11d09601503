package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// UpsertRating writes one rating row. The partial unique indexes make a
// resubmission overwrite the earlier stars and review rather than stacking
// duplicate rows.
func UpsertRating(tx *sql.Tx, r *models.Rating) error {
	if r.MenuItemID == nil {
		_, err := tx.Exec(`
			INSERT INTO ratings (user_id, order_id, outlet_id, menu_item_id, rating, review)
			VALUES ($1, $2, $3, NULL, $4, $5)
			ON CONFLICT (user_id, order_id) WHERE menu_item_id IS NULL
			DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review`,
			r.UserID, r.OrderID, r.OutletID, r.Rating, r.Review)
		return err
	}

	_, err := tx.Exec(`
		INSERT INTO ratings (user_id, order_id, outlet_id, menu_item_id, rating, review)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, order_id, menu_item_id) WHERE menu_item_id IS NOT NULL
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review`,
		r.UserID, r.OrderID, r.OutletID, r.MenuItemID, r.Rating, r.Review)
	return err
}

// OverallRatingsForOutlet returns the star values of rating rows with no
// menu item reference, the inputs to the displayed outlet average.
func OverallRatingsForOutlet(outletID uuid.UUID) ([]int, error) {
	rows, err := database.CampusEats.Query(`
		SELECT rating FROM ratings
		WHERE outlet_id = $1 AND menu_item_id IS NULL`, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// RatingAggregate is one outlet's or item's live average.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// OutletRatingAggregates computes per-outlet averages over overall rows for
// the catalog listing in a single query.
func OutletRatingAggregates() (map[uuid.UUID]RatingAggregate, error) {
	rows, err := database.CampusEats.Query(`
		SELECT outlet_id, AVG(rating)::float8, COUNT(*)
		FROM ratings
		WHERE menu_item_id IS NULL
		GROUP BY outlet_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := make(map[uuid.UUID]RatingAggregate)
	for rows.Next() {
		var id uuid.UUID
		var agg RatingAggregate
		if err := rows.Scan(&id, &agg.Average, &agg.Count); err != nil {
			return nil, err
		}
		aggregates[id] = agg
	}
	return aggregates, rows.Err()
}

// ItemRatingAggregates computes per-item averages for one outlet's menu.
func ItemRatingAggregates(outletID uuid.UUID) (map[uuid.UUID]RatingAggregate, error) {
	rows, err := database.CampusEats.Query(`
		SELECT menu_item_id, AVG(rating)::float8, COUNT(*)
		FROM ratings
		WHERE outlet_id = $1 AND menu_item_id IS NOT NULL
		GROUP BY menu_item_id`, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := make(map[uuid.UUID]RatingAggregate)
	for rows.Next() {
		var id uuid.UUID
		var agg RatingAggregate
		if err := rows.Scan(&id, &agg.Average, &agg.Count); err != nil {
			return nil, err
		}
		aggregates[id] = agg
	}
	return aggregates, rows.Err()
}
