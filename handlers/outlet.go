package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// ListOutlets serves the catalog: all outlets ordered by rating, optionally
// filtered by ?search= against outlet name, cuisine, or menu item names.
// Each outlet carries its live rating average when any overall ratings exist.
func ListOutlets(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	outlets, err := dbhelper.ListOutlets(search)
	if err != nil {
		http.Error(w, "failed to query outlets", http.StatusInternalServerError)
		return
	}

	aggregates, err := dbhelper.OutletRatingAggregates()
	if err != nil {
		http.Error(w, "failed to query ratings", http.StatusInternalServerError)
		return
	}

	for i := range outlets {
		if agg, ok := aggregates[outlets[i].ID]; ok {
			outlets[i].LiveRating = agg.Average
			outlets[i].RatingCount = agg.Count
		} else {
			outlets[i].LiveRating = outlets[i].Rating
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outlets)
}

func GetOutlet(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid outlet id", http.StatusBadRequest)
		return
	}

	outlet, err := dbhelper.GetOutletByID(outletID)
	if err != nil {
		http.Error(w, "outlet not found", http.StatusNotFound)
		return
	}

	overall, err := dbhelper.OverallRatingsForOutlet(outletID)
	if err != nil {
		http.Error(w, "failed to query ratings", http.StatusInternalServerError)
		return
	}
	outlet.LiveRating, outlet.RatingCount = models.DisplayRating(outlet.Rating, overall)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outlet)
}

// GetOutletRatings returns the displayed average plus per-item aggregates
// for one outlet.
func GetOutletRatings(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid outlet id", http.StatusBadRequest)
		return
	}

	outlet, err := dbhelper.GetOutletByID(outletID)
	if err != nil {
		http.Error(w, "outlet not found", http.StatusNotFound)
		return
	}

	overall, err := dbhelper.OverallRatingsForOutlet(outletID)
	if err != nil {
		http.Error(w, "failed to query ratings", http.StatusInternalServerError)
		return
	}

	itemAggregates, err := dbhelper.ItemRatingAggregates(outletID)
	if err != nil {
		http.Error(w, "failed to query ratings", http.StatusInternalServerError)
		return
	}

	type response struct {
		Rating      float64                                `json:"rating"`
		RatingCount int                                    `json:"rating_count"`
		Items       map[uuid.UUID]dbhelper.RatingAggregate `json:"items"`
	}

	var resp response
	resp.Rating, resp.RatingCount = models.DisplayRating(outlet.Rating, overall)
	resp.Items = itemAggregates

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetOutletMenu lists a single outlet's available items with per-item
// rating averages.
func GetOutletMenu(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid outlet id", http.StatusBadRequest)
		return
	}

	items, err := dbhelper.ListMenuByOutlet(outletID)
	if err != nil {
		http.Error(w, "failed to fetch menu", http.StatusInternalServerError)
		return
	}

	aggregates, err := dbhelper.ItemRatingAggregates(outletID)
	if err != nil {
		http.Error(w, "failed to query ratings", http.StatusInternalServerError)
		return
	}

	for i := range items {
		if agg, ok := aggregates[items[i].ID]; ok {
			items[i].LiveRating = agg.Average
			items[i].RatingCount = agg.Count
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
