package dbhelper

import (
	"github.com/google/uuid"

	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

func GetProfileByUserID(userID uuid.UUID) (*models.CustomerProfile, error) {
	var p models.CustomerProfile
	err := database.CampusEats.QueryRow(`
		SELECT id, user_id, name, age, gender, city, state, country, mobile_number, mobile_verified, created_at
		FROM customer_profiles WHERE user_id = $1`, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.City, &p.State,
			&p.Country, &p.MobileNumber, &p.MobileVerified, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile inserts or replaces the one profile row a user may have.
// A fresh mobile number resets the verified flag.
func UpsertProfile(p *models.CustomerProfile) error {
	_, err := database.CampusEats.Exec(`
		INSERT INTO customer_profiles (user_id, name, age, gender, city, state, country, mobile_number, mobile_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    gender = EXCLUDED.gender,
		    city = EXCLUDED.city,
		    state = EXCLUDED.state,
		    country = EXCLUDED.country,
		    mobile_verified = CASE
		        WHEN customer_profiles.mobile_number IS DISTINCT FROM EXCLUDED.mobile_number THEN FALSE
		        ELSE customer_profiles.mobile_verified
		    END,
		    mobile_number = EXCLUDED.mobile_number`,
		p.UserID, p.Name, p.Age, p.Gender, p.City, p.State, p.Country, p.MobileNumber)
	return err
}

func SetMobileVerified(userID uuid.UUID) error {
	_, err := database.CampusEats.Exec(`
		UPDATE customer_profiles SET mobile_verified = TRUE WHERE user_id = $1`, userID)
	return err
}
