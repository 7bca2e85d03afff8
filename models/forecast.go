package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ForecastPoint is the predicted price for a single month.
type ForecastPoint struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

// Forecast is a chronological list of monthly predictions. It encodes to a
// JSON object keyed by month label, with keys written in chronological order.
type Forecast []ForecastPoint

// Get returns the predicted price for the given month label.
func (f Forecast) Get(month string) (float64, bool) {
	for _, p := range f {
		if p.Month == month {
			return p.Price, true
		}
	}
	return 0, false
}

// Months returns the month labels in insertion order.
func (f Forecast) Months() []string {
	months := make([]string, 0, len(f))
	for _, p := range f {
		months = append(months, p.Month)
	}
	return months
}

func (f Forecast) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Month)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Price)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form back, keeping the order of the keys.
func (f *Forecast) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("forecast: expected object, got %v", tok)
	}

	points := Forecast{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		month, ok := tok.(string)
		if !ok {
			return fmt.Errorf("forecast: expected month key, got %v", tok)
		}
		var price float64
		if err := dec.Decode(&price); err != nil {
			return fmt.Errorf("forecast: month %q: %w", month, err)
		}
		points = append(points, ForecastPoint{Month: month, Price: price})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = points
	return nil
}

// ForecastRow is one line of the forecast as presented to clients.
type ForecastRow struct {
	Month            string  `json:"month"`
	PredictedPrice   float64 `json:"predicted_price"`
	VariationPercent float64 `json:"variation_percent"`
}

// ForecastResponse is the response body of the crop forecast endpoint.
type ForecastResponse struct {
	CropID       string        `json:"crop_id"`
	CropName     string        `json:"crop_name"`
	CurrentPrice float64       `json:"current_price"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Rows         []ForecastRow `json:"rows"`
}
