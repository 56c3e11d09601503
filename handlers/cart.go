package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

type cartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalCount int               `json:"total_count"`
	TotalPrice float64           `json:"total_price"`
}

func cartState(userID uuid.UUID) cartResponse {
	return cartResponse{
		Items:      Cart.Items(userID),
		TotalCount: Cart.TotalCount(userID),
		TotalPrice: Cart.TotalPrice(userID),
	}
}

func GetCart(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(claims.UserID))
}

// AddToCart snapshots the menu item into the caller's cart. The item must
// exist, be available, and belong to the same outlet as any items already
// in the cart.
func AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	item, err := dbhelper.GetMenuItemByID(req.MenuItemID)
	if err != nil {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}
	if !item.IsAvailable {
		http.Error(w, "item is not available", http.StatusConflict)
		return
	}

	outlet, err := dbhelper.GetOutletByID(item.OutletID)
	if err != nil {
		http.Error(w, "outlet not found", http.StatusNotFound)
		return
	}

	addErr := Cart.Add(claims.UserID, models.CartItem{
		MenuItemID:   item.ID,
		OutletID:     item.OutletID,
		OutletName:   outlet.Name,
		Name:         item.Name,
		Price:        item.Price,
		IsVegetarian: item.IsVegetarian,
	})
	if errors.Is(addErr, models.ErrDifferentOutlet) {
		http.Error(w, "cart holds items from another outlet, clear it first", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(claims.UserID))
}

// UpdateCartItem sets an item's quantity; zero removes it.
func UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	menuItemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	type request struct {
		Quantity int `json:"quantity"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	Cart.SetQuantity(claims.UserID, menuItemID, req.Quantity)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(claims.UserID))
}

func RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	menuItemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	Cart.Remove(claims.UserID, menuItemID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(claims.UserID))
}

func ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	Cart.Clear(claims.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(claims.UserID))
}
