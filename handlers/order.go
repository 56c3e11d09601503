package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/monitoring"
)

// Checkout turns the caller's cart into a pending order. Cart items were
// snapshotted at add time, so the order keeps the price the customer saw
// even if the menu changes afterwards.
func Checkout(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		CustomerName    string `json:"customer_name"`
		CustomerPhone   string `json:"customer_phone"`
		DeliveryAddress string `json:"delivery_address"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" || req.CustomerPhone == "" || req.DeliveryAddress == "" {
		http.Error(w, "name, phone and delivery address are required", http.StatusBadRequest)
		return
	}

	cartItems := Cart.Items(claims.UserID)
	if len(cartItems) == 0 {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}

	outletID := cartItems[0].OutletID
	order := &models.Order{
		UserID:          &claims.UserID,
		OutletID:        &outletID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     Cart.TotalPrice(claims.UserID),
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		menuItemID := ci.MenuItemID
		itemOutletID := ci.OutletID
		items = append(items, models.OrderItem{
			MenuItemID: &menuItemID,
			OutletID:   &itemOutletID,
			ItemName:   ci.Name,
			Quantity:   ci.Quantity,
			Price:      ci.Price,
		})
	}

	var orderID uuid.UUID
	txErr := database.Tx(func(tx *sql.Tx) error {
		var err error
		orderID, err = dbhelper.CreateOrder(tx, order, items)
		return err
	})
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to create order")
		http.Error(w, "failed to place order", http.StatusInternalServerError)
		return
	}

	Cart.Clear(claims.UserID)
	monitoring.OrdersPlaced.Inc()

	created, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		logrus.WithError(err).Error("failed to read back created order")
		http.Error(w, "failed to place order", http.StatusInternalServerError)
		return
	}
	created.Items, _ = dbhelper.GetOrderItems(orderID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func ListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := dbhelper.ListOrdersByUser(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("failed to list orders")
		http.Error(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	for i := range orders {
		items, err := dbhelper.GetOrderItems(orders[i].ID)
		if err != nil {
			logrus.WithError(err).Error("failed to fetch order items")
			http.Error(w, "failed to fetch orders", http.StatusInternalServerError)
			return
		}
		orders[i].Items = items
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.UserID == nil || *order.UserID != claims.UserID {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	order.Items, err = dbhelper.GetOrderItems(orderID)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch order items")
		http.Error(w, "failed to fetch order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// RateOrder records one overall rating for a delivered order, plus optional
// per-item ratings, all in a single transaction. Resubmitting replaces the
// earlier values.
func RateOrder(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	type itemRating struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
		Rating     int       `json:"rating"`
	}
	type request struct {
		Rating int          `json:"rating"`
		Review *string      `json:"review"`
		Items  []itemRating `json:"items"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	for _, ir := range req.Items {
		if ir.Rating < 1 || ir.Rating > 5 {
			http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
			return
		}
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.UserID == nil || *order.UserID != claims.UserID {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.Status != models.StatusDelivered {
		http.Error(w, "only delivered orders can be rated", http.StatusConflict)
		return
	}
	if order.OutletID == nil {
		http.Error(w, "order has no outlet", http.StatusConflict)
		return
	}

	txErr := database.Tx(func(tx *sql.Tx) error {
		overall := &models.Rating{
			UserID:   claims.UserID,
			OrderID:  orderID,
			OutletID: *order.OutletID,
			Rating:   req.Rating,
			Review:   req.Review,
		}
		if err := dbhelper.UpsertRating(tx, overall); err != nil {
			return err
		}
		for _, ir := range req.Items {
			menuItemID := ir.MenuItemID
			item := &models.Rating{
				UserID:     claims.UserID,
				OrderID:    orderID,
				OutletID:   *order.OutletID,
				MenuItemID: &menuItemID,
				Rating:     ir.Rating,
			}
			if err := dbhelper.UpsertRating(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to save rating")
		http.Error(w, "failed to save rating", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "rating saved"})
}
