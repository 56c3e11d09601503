package dbhelper

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// InsertNotification writes one inbox row and returns it fully populated so
// the realtime hub can push the same payload the next fetch would see.
func InsertNotification(n *models.Notification) (*models.Notification, error) {
	err := database.CampusEats.QueryRow(`
		INSERT INTO notifications (user_id, title, message, type, order_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at`,
		n.UserID, n.Title, n.Message, n.Type, n.OrderID).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotificationsByUser returns the recipient's most recent notifications,
// newest first, capped at limit.
func ListNotificationsByUser(userID uuid.UUID, limit int) ([]models.Notification, error) {
	rows, err := database.CampusEats.Query(`
		SELECT id, user_id, title, message, type, order_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.OrderID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips the flag for one of the recipient's rows. The
// user_id guard keeps users out of each other's inboxes.
func MarkNotificationRead(id, userID uuid.UUID) error {
	_, err := database.CampusEats.Exec(`
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func MarkNotificationsRead(ids []uuid.UUID, userID uuid.UUID) error {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	_, err := database.CampusEats.Exec(`
		UPDATE notifications SET is_read = TRUE
		WHERE id = ANY($1) AND user_id = $2`, pq.Array(strs), userID)
	return err
}

func MarkAllNotificationsRead(userID uuid.UUID) error {
	_, err := database.CampusEats.Exec(`
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	return err
}
