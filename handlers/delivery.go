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

// RegisterDeliveryPartner creates the caller's partner record and grants the
// delivery role. The customer role is untouched, so the session resolver
// lands such users on the customer view with the delivery toggle.
func RegisterDeliveryPartner(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Name        string  `json:"name"`
		Phone       *string `json:"phone"`
		VehicleType *string `json:"vehicle_type"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if _, err := dbhelper.GetDeliveryPartnerByUserID(claims.UserID); err == nil {
		http.Error(w, "already registered as a delivery partner", http.StatusConflict)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logrus.WithError(err).Error("failed to check delivery partner")
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	if _, err := dbhelper.CreateDeliveryPartner(claims.UserID, req.Name, req.Phone, req.VehicleType); err != nil {
		logrus.WithError(err).Error("failed to create delivery partner")
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	if err := dbhelper.AssignRoleDirect(claims.UserID, models.RoleDeliveryPartner); err != nil {
		logrus.WithError(err).Error("failed to assign delivery role")
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	partner, err := dbhelper.GetDeliveryPartnerByUserID(claims.UserID)
	if err != nil {
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(partner)
}

func GetDeliveryProfile(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(partner)
}

// UpdateDeliverySettings flips the accepting-orders switch and the partner's
// visible status together.
func UpdateDeliverySettings(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	type request struct {
		Status            models.PartnerStatus `json:"status"`
		IsAcceptingOrders bool                 `json:"is_accepting_orders"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.PartnerAvailable, models.PartnerBusy, models.PartnerOffline:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if err := dbhelper.UpdateDeliveryPartnerSettings(partner.ID, req.Status, req.IsAcceptingOrders); err != nil {
		logrus.WithError(err).Error("failed to update delivery settings")
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	partner.Status = req.Status
	partner.IsAcceptingOrders = req.IsAcceptingOrders

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(partner)
}

// AvailableOrders lists orders the partner can claim. Partners who switched
// off accepting orders see an empty list rather than an error.
func AvailableOrders(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	if !partner.IsAcceptingOrders {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Order{})
		return
	}

	orders, err := dbhelper.ListAvailableOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to list available orders")
		http.Error(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func MyDeliveries(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	orders, err := dbhelper.ListOrdersByDeliveryPartner(partner.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to list deliveries")
		http.Error(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// AcceptDeliveryOrder claims a pending order. The losing partner in a race
// gets a conflict, not a reassignment.
func AcceptDeliveryOrder(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}
	if !partner.IsAcceptingOrders {
		http.Error(w, "not accepting orders", http.StatusConflict)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := dbhelper.AcceptOrder(orderID, partner.ID); err != nil {
		if errors.Is(err, dbhelper.ErrOrderConflict) {
			http.Error(w, "order is no longer available", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("failed to accept order")
		http.Error(w, "failed to accept order", http.StatusInternalServerError)
		return
	}

	monitoring.OrderTransitions.WithLabelValues(string(models.StatusConfirmed)).Inc()

	if err := dbhelper.UpdateDeliveryPartnerStatus(partner.ID, models.PartnerBusy); err != nil {
		logrus.WithError(err).Error("failed to mark partner busy")
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		logrus.WithError(err).Error("failed to read back accepted order")
		http.Error(w, "failed to accept order", http.StatusInternalServerError)
		return
	}

	if order.UserID != nil {
		notify(*order.UserID, "Delivery Partner Assigned!",
			fmt.Sprintf("%s will deliver your order.", partner.Name),
			models.NotifyDeliveryAssigned, &orderID)
	}
	if order.OutletID != nil {
		if restaurantUserID, err := dbhelper.GetRestaurantPartnerUserByOutlet(*order.OutletID); err == nil {
			notify(restaurantUserID, "New Order Received!",
				fmt.Sprintf("Order from %s is waiting to be prepared.", order.CustomerName),
				models.NotifyRestaurantNotified, &orderID)
		} else if !errors.Is(err, sql.ErrNoRows) {
			logrus.WithError(err).Error("failed to look up restaurant partner")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// PickupOrder moves the partner's assigned order out for delivery. Picking
// up from confirmed is allowed when the kitchen never marked preparing.
func PickupOrder(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	order, ok := assignedOrderFromRequest(w, r, partner)
	if !ok {
		return
	}

	if err := models.CanTransition(order.Status, models.StatusOutForDelivery, models.ActorDelivery); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	err := dbhelper.UpdateOrderStatus(order.ID, models.StatusOutForDelivery,
		models.StatusConfirmed, models.StatusPreparing)
	if err != nil {
		if errors.Is(err, dbhelper.ErrOrderConflict) {
			http.Error(w, "order is not ready for pickup", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("failed to mark order picked up")
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	monitoring.OrderTransitions.WithLabelValues(string(models.StatusOutForDelivery)).Inc()

	order.Status = models.StatusOutForDelivery
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// DeliverOrder completes the delivery: the order goes terminal, the partner
// is credited the flat payout and returns to available or offline.
func DeliverOrder(w http.ResponseWriter, r *http.Request) {
	partner, ok := deliveryPartnerFromRequest(w, r)
	if !ok {
		return
	}

	order, ok := assignedOrderFromRequest(w, r, partner)
	if !ok {
		return
	}

	if err := models.CanTransition(order.Status, models.StatusDelivered, models.ActorDelivery); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	err := dbhelper.UpdateOrderStatus(order.ID, models.StatusDelivered, models.StatusOutForDelivery)
	if err != nil {
		if errors.Is(err, dbhelper.ErrOrderConflict) {
			http.Error(w, "order is not out for delivery", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("failed to mark order delivered")
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	monitoring.OrderTransitions.WithLabelValues(string(models.StatusDelivered)).Inc()

	if err := dbhelper.RecordDelivery(partner.ID, models.DeliveryPayout, partner.StatusAfterDelivery()); err != nil {
		logrus.WithError(err).Error("failed to record delivery stats")
	}

	if order.UserID != nil {
		notify(*order.UserID, "Order Delivered!",
			fmt.Sprintf("Your order from %s has been delivered. Enjoy your meal!", orderOutletName(order)),
			models.NotifyOrderDelivered, &order.ID)
	}

	order.Status = models.StatusDelivered
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func deliveryPartnerFromRequest(w http.ResponseWriter, r *http.Request) (*models.DeliveryPartner, bool) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	partner, err := dbhelper.GetDeliveryPartnerByUserID(claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "delivery partner profile not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch delivery partner")
		http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
		return nil, false
	}
	return partner, true
}

func assignedOrderFromRequest(w http.ResponseWriter, r *http.Request, partner *models.DeliveryPartner) (*models.Order, bool) {
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
	if order.DeliveryPartnerID == nil || *order.DeliveryPartnerID != partner.ID {
		http.Error(w, "order is not assigned to you", http.StatusForbidden)
		return nil, false
	}
	return order, true
}

func orderOutletName(order *models.Order) string {
	if order.OutletID == nil {
		return "the outlet"
	}
	outlet, err := dbhelper.GetOutletByID(*order.OutletID)
	if err != nil {
		return "the outlet"
	}
	return strings.TrimSpace(outlet.Name)
}
