package prediction

import (
	"agrimarket/models"
	"agrimarket/utils"
)

// Rows renders a forecast as display rows in forecast order, with prices and
// variations rounded to cents.
func Rows(current float64, forecast models.Forecast) []models.ForecastRow {
	rows := make([]models.ForecastRow, 0, len(forecast))
	for _, p := range forecast {
		rows = append(rows, models.ForecastRow{
			Month:            p.Month,
			PredictedPrice:   utils.RoundPrice(p.Price),
			VariationPercent: utils.RoundPrice(VariationPercent(current, p.Price)),
		})
	}
	return rows
}
