package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// Outlet create defaults, applied when the form leaves them blank.
const (
	defaultOutletRating       = 4.0
	defaultOutletDeliveryTime = "20-30 min"
)

func AdminCreateOutlet(w http.ResponseWriter, r *http.Request) {
	var outlet models.Outlet
	if err := json.NewDecoder(r.Body).Decode(&outlet); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if outlet.Name == "" {
		http.Error(w, "outlet name is required", http.StatusBadRequest)
		return
	}
	if outlet.Rating == 0 {
		outlet.Rating = defaultOutletRating
	}
	if outlet.DeliveryTime == "" {
		outlet.DeliveryTime = defaultOutletDeliveryTime
	}
	outlet.IsOpen = true

	id, err := dbhelper.CreateOutlet(&outlet)
	if err != nil {
		logrus.WithError(err).Error("failed to create outlet")
		http.Error(w, "failed to create outlet", http.StatusInternalServerError)
		return
	}

	created, err := dbhelper.GetOutletByID(id)
	if err != nil {
		http.Error(w, "failed to create outlet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func AdminUpdateOutlet(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(mux.Vars(r)["outletId"])
	if err != nil {
		http.Error(w, "invalid outlet id", http.StatusBadRequest)
		return
	}

	var outlet models.Outlet
	if err := json.NewDecoder(r.Body).Decode(&outlet); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	outlet.ID = outletID

	if err := dbhelper.UpdateOutlet(&outlet); err != nil {
		logrus.WithError(err).Error("failed to update outlet")
		http.Error(w, "failed to update outlet", http.StatusInternalServerError)
		return
	}

	updated, err := dbhelper.GetOutletByID(outletID)
	if err != nil {
		http.Error(w, "outlet not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// AdminDeleteOutlet removes the outlet; its menu items go with it via the
// foreign key cascade.
func AdminDeleteOutlet(w http.ResponseWriter, r *http.Request) {
	outletID, err := uuid.Parse(mux.Vars(r)["outletId"])
	if err != nil {
		http.Error(w, "invalid outlet id", http.StatusBadRequest)
		return
	}

	if err := dbhelper.DeleteOutlet(outletID); err != nil {
		logrus.WithError(err).Error("failed to delete outlet")
		http.Error(w, "failed to delete outlet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "outlet deleted"})
}

func AdminListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := dbhelper.ListAllMenuItems()
	if err != nil {
		logrus.WithError(err).Error("failed to list menu items")
		http.Error(w, "failed to fetch menu items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func AdminCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if item.Name == "" || item.OutletID == uuid.Nil {
		http.Error(w, "name and outlet id are required", http.StatusBadRequest)
		return
	}
	if item.Price < 0 {
		http.Error(w, "price cannot be negative", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateMenuItem(&item)
	if err != nil {
		logrus.WithError(err).Error("failed to create menu item")
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	created, err := dbhelper.GetMenuItemByID(id)
	if err != nil {
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func AdminUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if item.Price < 0 {
		http.Error(w, "price cannot be negative", http.StatusBadRequest)
		return
	}
	item.ID = itemID

	if err := dbhelper.UpdateMenuItem(&item); err != nil {
		logrus.WithError(err).Error("failed to update menu item")
		http.Error(w, "failed to update menu item", http.StatusInternalServerError)
		return
	}

	updated, err := dbhelper.GetMenuItemByID(itemID)
	if err != nil {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func AdminDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := dbhelper.DeleteMenuItem(itemID); err != nil {
		logrus.WithError(err).Error("failed to delete menu item")
		http.Error(w, "failed to delete menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "menu item deleted"})
}

func AdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := dbhelper.ListAllOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to list orders")
		http.Error(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := dbhelper.ListUsers()
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		http.Error(w, "failed to fetch users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func AdminListRestaurantPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := dbhelper.ListRestaurantPartners()
	if err != nil {
		logrus.WithError(err).Error("failed to list restaurant partners")
		http.Error(w, "failed to fetch partners", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(partners)
}

func AdminListDeliveryPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := dbhelper.ListDeliveryPartners()
	if err != nil {
		logrus.WithError(err).Error("failed to list delivery partners")
		http.Error(w, "failed to fetch partners", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(partners)
}

// AdminReviewRestaurantPartner approves or rejects an application. Approval
// links the outlet and grants the restaurant role so the partner's next
// session resolves to the restaurant view.
func AdminReviewRestaurantPartner(w http.ResponseWriter, r *http.Request) {
	partnerID, err := uuid.Parse(mux.Vars(r)["partnerId"])
	if err != nil {
		http.Error(w, "invalid partner id", http.StatusBadRequest)
		return
	}

	type request struct {
		Status   models.PartnerApproval `json:"status"`
		OutletID *uuid.UUID             `json:"outlet_id"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Status != models.ApprovalApproved && req.Status != models.ApprovalRejected {
		http.Error(w, "status must be approved or rejected", http.StatusBadRequest)
		return
	}
	if req.Status == models.ApprovalApproved && req.OutletID == nil {
		http.Error(w, "approval requires an outlet id", http.StatusBadRequest)
		return
	}

	if err := dbhelper.UpdateRestaurantPartnerApproval(partnerID, req.Status, req.OutletID); err != nil {
		logrus.WithError(err).Error("failed to update partner approval")
		http.Error(w, "failed to update partner", http.StatusInternalServerError)
		return
	}

	if req.Status == models.ApprovalApproved {
		partner, err := dbhelper.GetRestaurantPartnerByID(partnerID)
		if err != nil {
			logrus.WithError(err).Error("failed to reload partner after approval")
		} else if err := dbhelper.AssignRoleDirect(partner.UserID, models.RoleRestaurantPartner); err != nil {
			logrus.WithError(err).Error("failed to grant restaurant role")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "partner updated"})
}
