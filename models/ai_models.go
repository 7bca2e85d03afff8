package models

import "time"

// InsightRequest lets the caller steer the market commentary for a crop.
type InsightRequest struct {
	Question string `json:"question"`
}

// InsightResponse is the AI written commentary for a crop forecast.
type InsightResponse struct {
	CropID      string        `json:"crop_id"`
	CropName    string        `json:"crop_name"`
	GeneratedAt time.Time     `json:"generated_at"`
	Forecast    []ForecastRow `json:"forecast"`
	Analysis    string        `json:"analysis"`
}
