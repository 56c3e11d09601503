package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/monitoring"
)

// GetRestaurantProfile returns the partner record, its outlet and the
// lifetime revenue over delivered orders.
func GetRestaurantProfile(w http.ResponseWriter, r *http.Request) {
	partner, ok := restaurantPartnerFromRequest(w, r)
	if !ok {
		return
	}

	type response struct {
		Partner *models.RestaurantPartner `json:"partner"`
		Outlet  *models.Outlet            `json:"outlet,omitempty"`
		Revenue float64                   `json:"revenue"`
	}

	resp := response{Partner: partner}
	if partner.OutletID != nil {
		outlet, err := dbhelper.GetOutletByID(*partner.OutletID)
		if err != nil {
			logrus.WithError(err).Error("failed to fetch partner outlet")
			http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
			return
		}
		resp.Outlet = outlet

		revenue, err := dbhelper.OutletRevenue(*partner.OutletID)
		if err != nil {
			logrus.WithError(err).Error("failed to compute outlet revenue")
			http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
			return
		}
		resp.Revenue = revenue
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRestaurantPartner files an application. The account stays a plain
// customer until an admin approves it and links an outlet.
func RegisterRestaurantPartner(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		RestaurantName string  `json:"restaurant_name"`
		ContactPhone   *string `json:"contact_phone"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.RestaurantName == "" {
		http.Error(w, "restaurant name is required", http.StatusBadRequest)
		return
	}

	if _, err := dbhelper.GetRestaurantPartnerByUserID(claims.UserID); err == nil {
		http.Error(w, "already applied as a restaurant partner", http.StatusConflict)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logrus.WithError(err).Error("failed to check restaurant partner")
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	if _, err := dbhelper.CreateRestaurantPartner(claims.UserID, req.RestaurantName, req.ContactPhone); err != nil {
		logrus.WithError(err).Error("failed to create restaurant partner")
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	partner, err := dbhelper.GetRestaurantPartnerByUserID(claims.UserID)
	if err != nil {
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(partner)
}

// ListRestaurantOrders is the kitchen feed. Orders still pending with no
// delivery partner never appear here.
func ListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	partner, ok := restaurantPartnerFromRequest(w, r)
	if !ok {
		return
	}
	if partner.Status != models.ApprovalApproved || partner.OutletID == nil {
		http.Error(w, "partner is not approved with a linked outlet", http.StatusForbidden)
		return
	}

	orders, err := dbhelper.ListOrdersForOutlet(*partner.OutletID)
	if err != nil {
		logrus.WithError(err).Error("failed to list outlet orders")
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

// PrepareOrder marks the kitchen as working on a confirmed order and tells
// the customer who is delivering and what is being cooked.
func PrepareOrder(w http.ResponseWriter, r *http.Request) {
	partner, ok := restaurantPartnerFromRequest(w, r)
	if !ok {
		return
	}

	order, ok := outletOrderFromRequest(w, r, partner)
	if !ok {
		return
	}

	if err := models.CanTransition(order.Status, models.StatusPreparing, models.ActorRestaurant); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	err := dbhelper.UpdateOrderStatus(order.ID, models.StatusPreparing, models.StatusConfirmed)
	if err != nil {
		if errors.Is(err, dbhelper.ErrOrderConflict) {
			http.Error(w, "order is not awaiting preparation", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("failed to mark order preparing")
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	monitoring.OrderTransitions.WithLabelValues(string(models.StatusPreparing)).Inc()

	if order.UserID != nil {
		notify(*order.UserID, "Order Being Prepared!",
			preparingMessage(order), models.NotifyOrderAccepted, &order.ID)
	}

	order.Status = models.StatusPreparing
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// CancelRestaurantOrder rejects a confirmed order before preparation starts.
func CancelRestaurantOrder(w http.ResponseWriter, r *http.Request) {
	partner, ok := restaurantPartnerFromRequest(w, r)
	if !ok {
		return
	}

	order, ok := outletOrderFromRequest(w, r, partner)
	if !ok {
		return
	}

	if err := models.CanTransition(order.Status, models.StatusCancelled, models.ActorRestaurant); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	err := dbhelper.UpdateOrderStatus(order.ID, models.StatusCancelled, models.StatusConfirmed)
	if err != nil {
		if errors.Is(err, dbhelper.ErrOrderConflict) {
			http.Error(w, "order can no longer be cancelled", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("failed to cancel order")
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	monitoring.OrderTransitions.WithLabelValues(string(models.StatusCancelled)).Inc()

	order.Status = models.StatusCancelled
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// preparingMessage interpolates the delivery partner, the item list and the
// order total into the customer-facing text.
func preparingMessage(order *models.Order) string {
	partnerName := "A delivery partner"
	if order.DeliveryPartnerID != nil {
		if dp, err := dbhelper.GetDeliveryPartnerByID(*order.DeliveryPartnerID); err == nil {
			partnerName = dp.Name
		}
	}

	items, err := dbhelper.GetOrderItems(order.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch items for notification")
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.ItemName, it.Quantity))
	}

	return fmt.Sprintf("%s will pick up your order: %s. Total: ₹%.2f",
		partnerName, strings.Join(parts, ", "), order.TotalAmount)
}

func restaurantPartnerFromRequest(w http.ResponseWriter, r *http.Request) (*models.RestaurantPartner, bool) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	partner, err := dbhelper.GetRestaurantPartnerByUserID(claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "restaurant partner profile not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch restaurant partner")
		http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
		return nil, false
	}
	return partner, true
}

func outletOrderFromRequest(w http.ResponseWriter, r *http.Request, partner *models.RestaurantPartner) (*models.Order, bool) {
	if partner.Status != models.ApprovalApproved || partner.OutletID == nil {
		http.Error(w, "partner is not approved with a linked outlet", http.StatusForbidden)
		return nil, false
	}

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return nil, false
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return nil, false
	}
	if order.OutletID == nil || *order.OutletID != *partner.OutletID {
		http.Error(w, "order does not belong to your outlet", http.StatusForbidden)
		return nil, false
	}
	return order, true
}
