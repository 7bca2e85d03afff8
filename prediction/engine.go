// Package prediction forecasts crop prices for the coming months.
//
// The forecast combines three effects on the current price of a crop:
//   - a linear trend, the percentage gap between the price and the average
//     price of comparable listings (same crop in the same district and state),
//   - a seasonal multiplier looked up by crop family and calendar month,
//   - a flat 2% inflation per forecast month.
//
// Everything here is a pure function of its inputs. The clock and the random
// source used when there is nothing to compare against are injected.
package prediction

import (
	"math/rand/v2"
	"strings"
	"time"

	"agrimarket/models"
)

const (
	// Horizon is the number of months covered by a forecast.
	Horizon = 6
	// MonthLayout formats forecast labels, e.g. "Jan 2025".
	MonthLayout = "Jan 2006"

	inflationPerMonth = 0.02
	// fallback trend is drawn from [-fallbackTrend, fallbackTrend] percent.
	fallbackTrend = 5.0
)

// Engine produces forecasts using its clock and random source.
// The zero value is not usable, call New.
type Engine struct {
	now    func() time.Time
	random func() float64
}

type Option func(*Engine)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRandom sets the source of uniform values in [0, 1) used for the fallback
// trend. The function must be safe for concurrent use if the engine is shared.
func WithRandom(random func() float64) Option {
	return func(e *Engine) { e.random = random }
}

// New returns an engine reading the wall clock and the global random source.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now, random: rand.Float64}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time { return e.now() }

// GenerateForecast predicts the price of target for the next Horizon months,
// using pool as the universe of known listings.
func (e *Engine) GenerateForecast(target models.Crop, pool []models.Crop) models.Forecast {
	return Project(target, pool, e.now(), e.random)
}

// ForecastAt is GenerateForecast for a clock reading the caller already took,
// so labels agree with any timestamp reported alongside them.
func (e *Engine) ForecastAt(now time.Time, target models.Crop, pool []models.Crop) models.Forecast {
	return Project(target, pool, now, e.random)
}

// Annotate returns a copy of target with its predicted prices filled in.
func (e *Engine) Annotate(target models.Crop, pool []models.Crop) models.Crop {
	target.PredictedPrices = e.GenerateForecast(target, pool)
	return target
}

// AnnotateAll annotates every crop of pool against the whole pool.
func (e *Engine) AnnotateAll(pool []models.Crop) []models.Crop {
	now := e.now()
	out := make([]models.Crop, len(pool))
	for i, c := range pool {
		c.PredictedPrices = Project(c, pool, now, e.random)
		out[i] = c
	}
	return out
}

// Project is the stateless forecast: labels start at the month after now.
func Project(target models.Crop, pool []models.Crop, now time.Time, random func() float64) models.Forecast {
	trend := Trend(target.Price, HistoricalPrices(target, pool), random)
	s := seasonFor(target.Name)

	// anchor on the first day so adding months never overflows into the next one
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	forecast := make(models.Forecast, 0, Horizon)
	for i := 1; i <= Horizon; i++ {
		month := first.AddDate(0, i, 0)
		inflation := 1 + inflationPerMonth*float64(i)
		predicted := target.Price * (1 + trend*float64(i)/100) * s.factor(month.Month()) * inflation
		forecast = append(forecast, models.ForecastPoint{
			Month: month.Format(MonthLayout),
			Price: max(predicted, 0),
		})
	}
	return forecast
}

// HistoricalPrices returns, in pool order, the prices of the listings of the
// same crop in the same district and state as target, target excluded.
func HistoricalPrices(target models.Crop, pool []models.Crop) []float64 {
	var prices []float64
	for _, c := range pool {
		if c.ID == target.ID {
			continue
		}
		if strings.EqualFold(c.Name, target.Name) &&
			strings.EqualFold(c.District, target.District) &&
			strings.EqualFold(c.State, target.State) {
			prices = append(prices, c.Price)
		}
	}
	return prices
}

// Trend is the percentage deviation of current from the average of history.
// Without usable history (none, or an average of zero) it is a uniform
// random value in [-5, 5].
func Trend(current float64, history []float64, random func() float64) float64 {
	if len(history) == 0 {
		return randomTrend(random)
	}
	var sum float64
	for _, p := range history {
		sum += p
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return randomTrend(random)
	}
	return ((current - avg) / avg) * 100
}

func randomTrend(random func() float64) float64 {
	return random()*2*fallbackTrend - fallbackTrend
}

// VariationPercent is the change from current to predicted, in percent.
// It is 0 when current is not positive.
func VariationPercent(current, predicted float64) float64 {
	if current <= 0 {
		return 0
	}
	return ((predicted - current) / current) * 100
}
