package dbhelper

import (
	"github.com/google/uuid"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

// ListOutlets returns all outlets ordered by static rating descending. When
// search is non-empty the match is two-stage: outlet name or cuisine ILIKE,
// unioned with outlets owning a menu item whose name matches.
func ListOutlets(search string) ([]models.Outlet, error) {
	query := `
		SELECT id, name, description, image_url, cuisine_type, rating, delivery_time, is_open, created_at
		FROM outlets
		ORDER BY rating DESC`
	args := []interface{}{}

	if search != "" {
		query = `
			SELECT id, name, description, image_url, cuisine_type, rating, delivery_time, is_open, created_at
			FROM outlets
			WHERE name ILIKE '%' || $1 || '%'
			   OR cuisine_type ILIKE '%' || $1 || '%'
			   OR id IN (SELECT outlet_id FROM menu_items WHERE name ILIKE '%' || $1 || '%')
			ORDER BY rating DESC`
		args = append(args, search)
	}

	rows, err := database.CampusEats.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outlets []models.Outlet
	for rows.Next() {
		var o models.Outlet
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.ImageURL, &o.CuisineType,
			&o.Rating, &o.DeliveryTime, &o.IsOpen, &o.CreatedAt); err != nil {
			return nil, err
		}
		outlets = append(outlets, o)
	}
	return outlets, rows.Err()
}

func GetOutletByID(id uuid.UUID) (*models.Outlet, error) {
	var o models.Outlet
	err := database.CampusEats.QueryRow(`
		SELECT id, name, description, image_url, cuisine_type, rating, delivery_time, is_open, created_at
		FROM outlets WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.Description, &o.ImageURL, &o.CuisineType,
			&o.Rating, &o.DeliveryTime, &o.IsOpen, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func CreateOutlet(o *models.Outlet) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.CampusEats.QueryRow(`
		INSERT INTO outlets (name, description, image_url, cuisine_type, rating, delivery_time, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		o.Name, o.Description, o.ImageURL, o.CuisineType, o.Rating, o.DeliveryTime, o.IsOpen).Scan(&id)
	return id, err
}

func UpdateOutlet(o *models.Outlet) error {
	_, err := database.CampusEats.Exec(`
		UPDATE outlets
		SET name = $2, description = $3, image_url = $4, cuisine_type = $5, delivery_time = $6, is_open = $7
		WHERE id = $1`,
		o.ID, o.Name, o.Description, o.ImageURL, o.CuisineType, o.DeliveryTime, o.IsOpen)
	return err
}

// DeleteOutlet removes the outlet; menu items cascade.
func DeleteOutlet(id uuid.UUID) error {
	_, err := database.CampusEats.Exec(`DELETE FROM outlets WHERE id = $1`, id)
	return err
}
