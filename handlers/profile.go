package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/database/dbhelper"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/utils"
)

// GetProfile returns the caller's profile. A missing row is an empty state,
// not an error: new accounts simply have not filled the form yet.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := dbhelper.GetProfileByUserID(claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct{}{})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch profile")
		http.Error(w, "failed to fetch profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// SaveProfile upserts the caller's profile. Changing the mobile number
// resets its verified flag until the OTP check runs again.
func SaveProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Name         string  `json:"name"`
		Age          *int    `json:"age"`
		Gender       *string `json:"gender"`
		City         *string `json:"city"`
		State        *string `json:"state"`
		Country      *string `json:"country"`
		MobileNumber *string `json:"mobile_number"`
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
	if req.MobileNumber != nil && !utils.IsValidMobile(*req.MobileNumber) {
		http.Error(w, "mobile number must be 10 digits", http.StatusBadRequest)
		return
	}

	profile := &models.CustomerProfile{
		UserID:       claims.UserID,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		MobileNumber: req.MobileNumber,
	}
	if err := dbhelper.UpsertProfile(profile); err != nil {
		logrus.WithError(err).Error("failed to save profile")
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	saved, err := dbhelper.GetProfileByUserID(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("failed to read back profile")
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

func SendMobileOtp(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := dbhelper.GetProfileByUserID(claims.UserID)
	if err != nil || profile.MobileNumber == nil {
		http.Error(w, "no mobile number on profile", http.StatusBadRequest)
		return
	}

	if err := Otp.SendOtp(*profile.MobileNumber); err != nil {
		logrus.WithError(err).Error("failed to send otp")
		http.Error(w, "failed to send otp", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "otp sent"})
}

func VerifyMobileOtp(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Code string `json:"code"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	profile, err := dbhelper.GetProfileByUserID(claims.UserID)
	if err != nil || profile.MobileNumber == nil {
		http.Error(w, "no mobile number on profile", http.StatusBadRequest)
		return
	}

	if !Otp.VerifyOtp(*profile.MobileNumber, req.Code) {
		http.Error(w, "invalid otp", http.StatusBadRequest)
		return
	}

	if err := dbhelper.SetMobileVerified(claims.UserID); err != nil {
		logrus.WithError(err).Error("failed to mark mobile verified")
		http.Error(w, "failed to verify mobile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "mobile verified"})
}
