package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

const deliveryPartnerColumns = `id, user_id, name, phone, vehicle_type, status, is_accepting_orders, total_deliveries, earnings, created_at`

func scanDeliveryPartner(row *sql.Row) (*models.DeliveryPartner, error) {
	var p models.DeliveryPartner
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.VehicleType, &p.Status,
		&p.IsAcceptingOrders, &p.TotalDeliveries, &p.Earnings, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetDeliveryPartnerByUserID(userID uuid.UUID) (*models.DeliveryPartner, error) {
	return scanDeliveryPartner(database.CampusEats.QueryRow(`
		SELECT `+deliveryPartnerColumns+`
		FROM delivery_partners WHERE user_id = $1`, userID))
}

func GetDeliveryPartnerByID(id uuid.UUID) (*models.DeliveryPartner, error) {
	return scanDeliveryPartner(database.CampusEats.QueryRow(`
		SELECT `+deliveryPartnerColumns+`
		FROM delivery_partners WHERE id = $1`, id))
}

func CreateDeliveryPartner(userID uuid.UUID, name string, phone, vehicleType *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.CampusEats.QueryRow(`
		INSERT INTO delivery_partners (user_id, name, phone, vehicle_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, userID, name, phone, vehicleType).Scan(&id)
	return id, err
}

func UpdateDeliveryPartnerStatus(id uuid.UUID, status models.PartnerStatus) error {
	_, err := database.CampusEats.Exec(`
		UPDATE delivery_partners SET status = $2 WHERE id = $1`, id, status)
	return err
}

func UpdateDeliveryPartnerSettings(id uuid.UUID, status models.PartnerStatus, acceptingOrders bool) error {
	_, err := database.CampusEats.Exec(`
		UPDATE delivery_partners
		SET status = $2, is_accepting_orders = $3
		WHERE id = $1`, id, status, acceptingOrders)
	return err
}

// RecordDelivery credits the flat payout, bumps the delivery count and sets
// the partner's post-delivery status in one write.
func RecordDelivery(id uuid.UUID, payout float64, status models.PartnerStatus) error {
	_, err := database.CampusEats.Exec(`
		UPDATE delivery_partners
		SET total_deliveries = total_deliveries + 1,
		    earnings = earnings + $2,
		    status = $3
		WHERE id = $1`, id, payout, status)
	return err
}

func ListDeliveryPartners() ([]models.DeliveryPartner, error) {
	rows, err := database.CampusEats.Query(`
		SELECT ` + deliveryPartnerColumns + `
		FROM delivery_partners
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []models.DeliveryPartner
	for rows.Next() {
		var p models.DeliveryPartner
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.VehicleType, &p.Status,
			&p.IsAcceptingOrders, &p.TotalDeliveries, &p.Earnings, &p.CreatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

const restaurantPartnerColumns = `id, user_id, outlet_id, restaurant_name, contact_phone, status, created_at`

func GetRestaurantPartnerByID(id uuid.UUID) (*models.RestaurantPartner, error) {
	var p models.RestaurantPartner
	err := database.CampusEats.QueryRow(`
		SELECT `+restaurantPartnerColumns+`
		FROM restaurant_partners WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.OutletID, &p.RestaurantName, &p.ContactPhone, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetRestaurantPartnerByUserID(userID uuid.UUID) (*models.RestaurantPartner, error) {
	var p models.RestaurantPartner
	err := database.CampusEats.QueryRow(`
		SELECT `+restaurantPartnerColumns+`
		FROM restaurant_partners WHERE user_id = $1`, userID).
		Scan(&p.ID, &p.UserID, &p.OutletID, &p.RestaurantName, &p.ContactPhone, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetRestaurantPartnerUserByOutlet finds the user behind an outlet's
// kitchen, used to address the "prepare order" notification.
func GetRestaurantPartnerUserByOutlet(outletID uuid.UUID) (uuid.UUID, error) {
	var userID uuid.UUID
	err := database.CampusEats.QueryRow(`
		SELECT user_id FROM restaurant_partners
		WHERE outlet_id = $1 AND status = 'approved'`, outletID).Scan(&userID)
	return userID, err
}

func CreateRestaurantPartner(userID uuid.UUID, restaurantName string, contactPhone *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.CampusEats.QueryRow(`
		INSERT INTO restaurant_partners (user_id, restaurant_name, contact_phone)
		VALUES ($1, $2, $3)
		RETURNING id`, userID, restaurantName, contactPhone).Scan(&id)
	return id, err
}

func ListRestaurantPartners() ([]models.RestaurantPartner, error) {
	rows, err := database.CampusEats.Query(`
		SELECT ` + restaurantPartnerColumns + `
		FROM restaurant_partners
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []models.RestaurantPartner
	for rows.Next() {
		var p models.RestaurantPartner
		if err := rows.Scan(&p.ID, &p.UserID, &p.OutletID, &p.RestaurantName,
			&p.ContactPhone, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func UpdateRestaurantPartnerApproval(id uuid.UUID, status models.PartnerApproval, outletID *uuid.UUID) error {
	_, err := database.CampusEats.Exec(`
		UPDATE restaurant_partners
		SET status = $2, outlet_id = COALESCE($3, outlet_id)
		WHERE id = $1`, id, status, outletID)
	return err
}

// OutletRevenue sums delivered order totals for the restaurant profile.
func OutletRevenue(outletID uuid.UUID) (float64, error) {
	var revenue float64
	err := database.CampusEats.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE outlet_id = $1 AND status = 'delivered'`, outletID).Scan(&revenue)
	return revenue, err
}
