package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// notificationFeedLimit caps the inbox response at the most recent entries.
const notificationFeedLimit = 20

func ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := dbhelper.ListNotificationsByUser(claims.UserID, notificationFeedLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to list notifications")
		http.Error(w, "failed to fetch notifications", http.StatusInternalServerError)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	notificationID, err := uuid.Parse(mux.Vars(r)["notificationId"])
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	if err := dbhelper.MarkNotificationRead(notificationID, claims.UserID); err != nil {
		logrus.WithError(err).Error("failed to mark notification read")
		http.Error(w, "failed to update notification", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "marked read"})
}

// MarkAllNotificationsRead clears the unread flag: for the ids in the body
// when given, otherwise for the whole inbox.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	// an empty body means mark everything
	_ = json.NewDecoder(r.Body).Decode(&req)

	if len(req.IDs) > 0 {
		if err := dbhelper.MarkNotificationsRead(req.IDs, claims.UserID); err != nil {
			logrus.WithError(err).Error("failed to mark notifications read")
			http.Error(w, "failed to update notifications", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "marked read"})
		return
	}

	if err := dbhelper.MarkAllNotificationsRead(claims.UserID); err != nil {
		logrus.WithError(err).Error("failed to mark notifications read")
		http.Error(w, "failed to update notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "marked all read"})
}

// NotificationSocket upgrades to a websocket scoped to the caller, so the
// hub's pushes stay inside the recipient's own feed.
func NotificationSocket(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	Hub.Serve(w, r, claims.UserID)
}
