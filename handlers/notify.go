package handlers

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/monitoring"
)

// notify inserts one inbox row and pushes it to the recipient's live
// connections. Delivery is at-most-once: an insert failure is logged and
// swallowed, never retried, and never fails the transition that caused it.
func notify(userID uuid.UUID, title, message string, notifType models.NotificationType, orderID *uuid.UUID) {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		OrderID: orderID,
	}

	inserted, err := dbhelper.InsertNotification(n)
	if err != nil {
		monitoring.NotificationFailures.Inc()
		logrus.WithError(err).WithField("type", notifType).Error("failed to insert notification")
		return
	}

	monitoring.NotificationsSent.WithLabelValues(string(notifType)).Inc()
	if Hub != nil {
		Hub.Publish(userID, inserted)
	}
}
