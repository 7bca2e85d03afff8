package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	State       string `json:"state"`
	District    string `json:"district"`
	Taluk       string `json:"taluk"`
	PhoneNumber string `json:"phone_number"`
}

// --- Core Models ---

// User is a farmer or a retailer registered on the marketplace.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	State       string    `json:"state"`
	District    string    `json:"district"`
	Taluk       string    `json:"taluk"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Crop is a priced listing published by a farmer. State, District and Taluk
// locate it from the widest to the narrowest area.
type Crop struct {
	ID              string    `json:"id"`
	FarmerID        string    `json:"farmer_id"`
	FarmerName      string    `json:"farmer_name"`
	State           string    `json:"state"`
	District        string    `json:"district"`
	Taluk           string    `json:"taluk"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"image_url"`
	Price           float64   `json:"price"`
	Description     string    `json:"description"`
	PredictedPrices Forecast  `json:"predicted_prices,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// --- Requests ---

type CreateCropRequest struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	District    string  `json:"district"`
	Taluk       string  `json:"taluk"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// UpdateCropRequest only changes the fields that are present.
type UpdateCropRequest struct {
	Name        *string  `json:"name"`
	State       *string  `json:"state"`
	District    *string  `json:"district"`
	Taluk       *string  `json:"taluk"`
	ImageURL    *string  `json:"image_url"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	State       *string `json:"state"`
	District    *string `json:"district"`
	Taluk       *string `json:"taluk"`
	PhoneNumber *string `json:"phone_number"`
}
