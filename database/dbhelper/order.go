package dbhelper

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// ErrOrderConflict is returned when a guarded status update matched no row:
// either the order does not exist or another actor moved it first.
var ErrOrderConflict = errors.New("order not in expected status")

const orderColumns = `id, user_id, outlet_id, customer_name, customer_phone, delivery_address, total_amount, status, delivery_partner_id, created_at`

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OutletID, &o.CustomerName, &o.CustomerPhone,
			&o.DeliveryAddress, &o.TotalAmount, &o.Status, &o.DeliveryPartnerID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CreateOrder inserts the order row and its item snapshots inside tx.
func CreateOrder(tx *sql.Tx, order *models.Order, items []models.OrderItem) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO orders (user_id, outlet_id, customer_name, customer_phone, delivery_address, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		order.UserID, order.OutletID, order.CustomerName, order.CustomerPhone,
		order.DeliveryAddress, order.TotalAmount, models.StatusPending).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}

	for _, item := range items {
		_, err := tx.Exec(`
			INSERT INTO order_items (order_id, menu_item_id, outlet_id, item_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, item.MenuItemID, item.OutletID, item.ItemName, item.Quantity, item.Price)
		if err != nil {
			return uuid.Nil, err
		}
	}

	return id, nil
}

func GetOrderByID(id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := database.CampusEats.QueryRow(`
		SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.OutletID, &o.CustomerName, &o.CustomerPhone,
			&o.DeliveryAddress, &o.TotalAmount, &o.Status, &o.DeliveryPartnerID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func GetOrderItems(orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := database.CampusEats.Query(`
		SELECT id, order_id, menu_item_id, outlet_id, item_name, quantity, price
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.OutletID,
			&it.ItemName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func ListOrdersByUser(userID uuid.UUID) ([]models.Order, error) {
	rows, err := database.CampusEats.Query(`
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func ListAllOrders() ([]models.Order, error) {
	rows, err := database.CampusEats.Query(`
		SELECT ` + orderColumns + ` FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListAvailableOrders returns orders a delivery partner can accept: still
// pending and not yet claimed by anyone.
func ListAvailableOrders() ([]models.Order, error) {
	rows, err := database.CampusEats.Query(`
		SELECT ` + orderColumns + ` FROM orders
		WHERE status = 'pending' AND delivery_partner_id IS NULL
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func ListOrdersByDeliveryPartner(partnerID uuid.UUID) ([]models.Order, error) {
	rows, err := database.CampusEats.Query(`
		SELECT `+orderColumns+` FROM orders
		WHERE delivery_partner_id = $1
		ORDER BY created_at DESC`, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListOrdersForOutlet is the restaurant dashboard feed. Pending orders are
// excluded: the kitchen does not see an order until a delivery partner has
// accepted it. The delivery partner's name is joined in for display.
func ListOrdersForOutlet(outletID uuid.UUID) ([]models.Order, error) {
	statuses := []string{
		string(models.StatusConfirmed), string(models.StatusPreparing),
		string(models.StatusOutForDelivery), string(models.StatusDelivered), string(models.StatusCancelled),
	}
	rows, err := database.CampusEats.Query(`
		SELECT o.id, o.user_id, o.outlet_id, o.customer_name, o.customer_phone, o.delivery_address,
		       o.total_amount, o.status, o.delivery_partner_id, o.created_at,
		       COALESCE(dp.name, '')
		FROM orders o
		LEFT JOIN delivery_partners dp ON dp.id = o.delivery_partner_id
		WHERE o.outlet_id = $1 AND o.status = ANY($2)
		ORDER BY o.created_at DESC`, outletID, pq.Array(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OutletID, &o.CustomerName, &o.CustomerPhone,
			&o.DeliveryAddress, &o.TotalAmount, &o.Status, &o.DeliveryPartnerID, &o.CreatedAt,
			&o.DeliveryPartnerName); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// AcceptOrder claims a pending order for a delivery partner. The WHERE
// clause re-checks eligibility so the slower of two racing partners sees
// ErrOrderConflict instead of silently overwriting the assignment.
func AcceptOrder(orderID, partnerID uuid.UUID) error {
	res, err := database.CampusEats.Exec(`
		UPDATE orders
		SET status = $3, delivery_partner_id = $2
		WHERE id = $1 AND status = 'pending' AND delivery_partner_id IS NULL`,
		orderID, partnerID, models.StatusConfirmed)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderConflict
	}
	return nil
}

// UpdateOrderStatus moves an order between states, guarded by the set of
// statuses the transition may start from.
func UpdateOrderStatus(orderID uuid.UUID, to models.OrderStatus, from ...models.OrderStatus) error {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	res, err := database.CampusEats.Exec(`
		UPDATE orders
		SET status = $2
		WHERE id = $1 AND status = ANY($3)`,
		orderID, to, pq.Array(fromStrs))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderConflict
	}
	return nil
}
