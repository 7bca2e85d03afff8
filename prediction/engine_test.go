package prediction

import (
	"math"
	"sync"
	"testing"
	"time"

	"agrimarket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 30, 0, 0, time.UTC) }
}

func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

func wheatTarget() models.Crop {
	return models.Crop{ID: "target", Name: "Wheat", State: "Punjab", District: "Ludhiana", Taluk: "Khanna", Price: 2500}
}

func TestGenerateForecast_EndToEndWheat(t *testing.T) {
	target := wheatTarget()
	pool := []models.Crop{
		target,
		{ID: "rice-same-place", Name: "Rice", State: "Punjab", District: "Ludhiana", Price: 900},
		{ID: "wheat-other-district", Name: "Wheat", State: "Punjab", District: "Amritsar", Price: 100},
		{ID: "wheat-other-state", Name: "Wheat", State: "Haryana", District: "Ludhiana", Price: 100},
		{ID: "comparable", Name: "wheat", State: "PUNJAB", District: "ludhiana", Taluk: "Samrala", Price: 2500},
	}

	engine := New(WithClock(fixedClock(2025, time.February, 15)), WithRandom(func() float64 {
		t.Fatal("random trend must not be used when comparables exist")
		return 0
	}))
	forecast := engine.GenerateForecast(target, pool)

	require.Len(t, forecast, Horizon)
	assert.Equal(t, "Mar 2025", forecast[0].Month)
	assert.InDelta(t, 2805.0, forecast[0].Price, 1e-9)
}

func TestGenerateForecast_ZeroTrendFollowsInflationAndSeason(t *testing.T) {
	target := models.Crop{ID: "a", Name: "Onion", State: "Maharashtra", District: "Nashik", Price: 40}
	pool := []models.Crop{
		{ID: "b", Name: "Onion", State: "Maharashtra", District: "Nashik", Price: 30},
		{ID: "c", Name: "Onion", State: "Maharashtra", District: "Nashik", Price: 50},
	}

	now := fixedClock(2025, time.February, 15)
	forecast := New(WithClock(now)).GenerateForecast(target, pool)

	require.Len(t, forecast, Horizon)
	first := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range forecast {
		period := i + 1
		month := first.AddDate(0, period, 0).Month()
		want := 40 * (1 + 0.02*float64(period)) * SeasonalFactor("Onion", month)
		assert.InDelta(t, want, p.Price, 1e-9, "period %d", period)
	}
}

func TestGenerateForecast_LabelsAreConsecutiveMonths(t *testing.T) {
	cases := []struct {
		name string
		now  func() time.Time
		want []string
	}{
		{
			name: "mid year",
			now:  fixedClock(2025, time.February, 15),
			want: []string{"Mar 2025", "Apr 2025", "May 2025", "Jun 2025", "Jul 2025", "Aug 2025"},
		},
		{
			name: "year rollover",
			now:  fixedClock(2025, time.November, 30),
			want: []string{"Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026", "Apr 2026", "May 2026"},
		},
		{
			name: "end of long month",
			now:  fixedClock(2025, time.January, 31),
			want: []string{"Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025", "Jul 2025"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := New(WithClock(tc.now), WithRandom(fixedRandom(0.5)))
			forecast := engine.GenerateForecast(wheatTarget(), nil)
			assert.Equal(t, tc.want, forecast.Months())
		})
	}
}

func TestGenerateForecast_NoComparablesUsesRandomTrend(t *testing.T) {
	target := wheatTarget()
	// only itself and listings from elsewhere
	pool := []models.Crop{
		target,
		{ID: "x", Name: "Wheat", State: "Bihar", District: "Patna", Price: 1000},
	}

	now := fixedClock(2025, time.February, 15)
	low := New(WithClock(now), WithRandom(fixedRandom(0))).GenerateForecast(target, pool)
	high := New(WithClock(now), WithRandom(fixedRandom(0.999999))).GenerateForecast(target, pool)

	assert.Equal(t, low.Months(), high.Months())
	// trend -5%: 2500 * 0.95 * 1.1 * 1.02
	assert.InDelta(t, 2500*0.95*1.1*1.02, low[0].Price, 1e-9)
	assert.Greater(t, high[0].Price, low[0].Price)
}

func TestGenerateForecast_ZeroAverageFallsBackToRandomTrend(t *testing.T) {
	target := models.Crop{ID: "t", Name: "Tomato", State: "Karnataka", District: "Kolar", Price: 100}
	pool := []models.Crop{
		{ID: "free-1", Name: "Tomato", State: "Karnataka", District: "Kolar", Price: 0},
		{ID: "free-2", Name: "tomato", State: "karnataka", District: "kolar", Price: 0},
	}

	engine := New(WithClock(fixedClock(2025, time.February, 15)), WithRandom(fixedRandom(0.75)))
	forecast := engine.GenerateForecast(target, pool)

	require.Len(t, forecast, Horizon)
	for _, p := range forecast {
		assert.False(t, math.IsNaN(p.Price) || math.IsInf(p.Price, 0), "month %s", p.Month)
	}
	// trend 2.5%, March default factor 1.05
	assert.InDelta(t, 100*1.025*1.05*1.02, forecast[0].Price, 1e-9)
}

func TestGenerateForecast_ClampsNegativePredictions(t *testing.T) {
	target := models.Crop{ID: "cheap", Name: "Potato", State: "UP", District: "Agra", Price: 10}
	pool := []models.Crop{{ID: "dear", Name: "Potato", State: "UP", District: "Agra", Price: 100}}

	forecast := New(WithClock(fixedClock(2025, time.May, 1))).GenerateForecast(target, pool)

	require.Len(t, forecast, Horizon)
	assert.Greater(t, forecast[0].Price, 0.0)
	for _, p := range forecast[1:] {
		assert.Equal(t, 0.0, p.Price, "month %s", p.Month)
	}
}

func TestGenerateForecast_NonPositivePriceIsDegenerate(t *testing.T) {
	for _, price := range []float64{0, -50} {
		target := models.Crop{ID: "t", Name: "Rice", Price: price}
		forecast := New(WithRandom(fixedRandom(0.5))).GenerateForecast(target, nil)
		require.Len(t, forecast, Horizon)
		for _, p := range forecast {
			assert.Equal(t, 0.0, p.Price)
		}
	}
}

func TestTrend(t *testing.T) {
	assert.Equal(t, 0.0, Trend(2500, []float64{2500}, nil))
	assert.InDelta(t, 25.0, Trend(125, []float64{100, 50, 150}, nil), 1e-9)
	assert.InDelta(t, -5.0, Trend(125, nil, fixedRandom(0)), 1e-9)
	assert.InDelta(t, 0.0, Trend(125, []float64{0}, fixedRandom(0.5)), 1e-9)
}

func TestTrend_RandomFallbackStaysInRange(t *testing.T) {
	assert.Equal(t, -5.0, Trend(100, nil, fixedRandom(0)))
	upper := Trend(100, nil, fixedRandom(math.Nextafter(1, 0)))
	assert.Less(t, upper, 5.0)
	assert.InDelta(t, 5.0, upper, 1e-9)

	for range 1000 {
		got := Trend(100, nil, New().random)
		assert.GreaterOrEqual(t, got, -5.0)
		assert.Less(t, got, 5.0)
	}
}

func TestForecastAt_UsesGivenTimeNotEngineClock(t *testing.T) {
	target := wheatTarget()
	engine := New(WithClock(fixedClock(2030, time.July, 1)), WithRandom(fixedRandom(0.5)))

	got := engine.ForecastAt(time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC), target, nil)

	assert.Equal(t, []string{"Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025", "Jul 2025"}, got.Months())
}

func TestHistoricalPrices_KeepsPoolOrderAndDuplicates(t *testing.T) {
	target := wheatTarget()
	pool := []models.Crop{
		{ID: "1", Name: "WHEAT", State: "Punjab", District: "Ludhiana", Price: 10},
		target,
		{ID: "2", Name: "Wheat", State: "Punjab", District: "Ludhiana", Price: 30},
		{ID: "3", Name: "Wheat", State: "Punjab", District: "Ludhiana", Price: 10},
		{ID: "4", Name: "Durum Wheat", State: "Punjab", District: "Ludhiana", Price: 99},
	}
	assert.Equal(t, []float64{10, 30, 10}, HistoricalPrices(target, pool))
}

func TestVariationPercent(t *testing.T) {
	assert.InDelta(t, 10.0, VariationPercent(100, 110), 1e-9)
	assert.Equal(t, 0.0, VariationPercent(0, 50))
	assert.Equal(t, 0.0, VariationPercent(-10, 50))
	assert.InDelta(t, -10.0, VariationPercent(100, 90), 1e-9)
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	target := wheatTarget()
	engine := New(WithClock(fixedClock(2025, time.February, 15)), WithRandom(fixedRandom(0.5)))

	got := engine.Annotate(target, []models.Crop{target})

	assert.Nil(t, target.PredictedPrices)
	assert.Len(t, got.PredictedPrices, Horizon)
	assert.Equal(t, target.ID, got.ID)
}

func TestAnnotateAll(t *testing.T) {
	pool := []models.Crop{
		wheatTarget(),
		{ID: "comparable", Name: "Wheat", State: "Punjab", District: "Ludhiana", Price: 2500},
	}
	engine := New(WithClock(fixedClock(2025, time.February, 15)), WithRandom(fixedRandom(0.5)))

	got := engine.AnnotateAll(pool)

	require.Len(t, got, 2)
	for _, c := range got {
		price, ok := c.PredictedPrices.Get("Mar 2025")
		require.True(t, ok)
		assert.InDelta(t, 2805.0, price, 1e-9)
	}
	assert.Nil(t, pool[0].PredictedPrices)
}

func TestGenerateForecast_ConcurrentCallers(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := New()
	target := wheatTarget()

	var wg sync.WaitGroup
	results := make([]models.Forecast, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.GenerateForecast(target, nil)
		}(i)
	}
	wg.Wait()

	for _, f := range results {
		require.Len(t, f, Horizon)
		assert.Equal(t, results[0].Months(), f.Months())
		for _, p := range f {
			assert.GreaterOrEqual(t, p.Price, 0.0)
		}
	}
}
