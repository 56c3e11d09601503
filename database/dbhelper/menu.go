package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

const menuColumns = `id, outlet_id, name, description, price, image_url, category, is_vegetarian, is_available, created_at`

func scanMenuItems(rows *sql.Rows) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.OutletID, &m.Name, &m.Description, &m.Price,
			&m.ImageURL, &m.Category, &m.IsVegetarian, &m.IsAvailable, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// ListMenuByOutlet returns available items for the customer menu, grouped by
// category order.
func ListMenuByOutlet(outletID uuid.UUID) ([]models.MenuItem, error) {
	rows, err := database.CampusEats.Query(`
		SELECT `+menuColumns+`
		FROM menu_items
		WHERE outlet_id = $1 AND is_available = TRUE
		ORDER BY category, name`, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

// ListAllMenuItems is the admin view: every item regardless of availability.
func ListAllMenuItems() ([]models.MenuItem, error) {
	rows, err := database.CampusEats.Query(`
		SELECT ` + menuColumns + `
		FROM menu_items
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

func GetMenuItemByID(id uuid.UUID) (*models.MenuItem, error) {
	var m models.MenuItem
	err := database.CampusEats.QueryRow(`
		SELECT `+menuColumns+`
		FROM menu_items WHERE id = $1`, id).
		Scan(&m.ID, &m.OutletID, &m.Name, &m.Description, &m.Price,
			&m.ImageURL, &m.Category, &m.IsVegetarian, &m.IsAvailable, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateMenuItem(m *models.MenuItem) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.CampusEats.QueryRow(`
		INSERT INTO menu_items (outlet_id, name, description, price, image_url, category, is_vegetarian, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		m.OutletID, m.Name, m.Description, m.Price, m.ImageURL, m.Category, m.IsVegetarian, m.IsAvailable).Scan(&id)
	return id, err
}

func UpdateMenuItem(m *models.MenuItem) error {
	_, err := database.CampusEats.Exec(`
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, image_url = $5, category = $6, is_vegetarian = $7, is_available = $8
		WHERE id = $1`,
		m.ID, m.Name, m.Description, m.Price, m.ImageURL, m.Category, m.IsVegetarian, m.IsAvailable)
	return err
}

func DeleteMenuItem(id uuid.UUID) error {
	_, err := database.CampusEats.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	return err
}
