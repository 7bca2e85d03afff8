package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastMarshalKeepsChronologicalOrder(t *testing.T) {
	f := Forecast{
		{Month: "Nov 2025", Price: 10.5},
		{Month: "Dec 2025", Price: 11},
		{Month: "Jan 2026", Price: 0},
		{Month: "Apr 2025", Price: 3},
	}

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"Nov 2025":10.5,"Dec 2025":11,"Jan 2026":0,"Apr 2025":3}`, string(b))

	var back Forecast
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, f, back)
}

func TestForecastUnmarshalRejectsArrays(t *testing.T) {
	var f Forecast
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &f))
}

func TestCropOmitsEmptyForecast(t *testing.T) {
	b, err := json.Marshal(Crop{ID: "c1", Name: "Wheat"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "predicted_prices")

	b, err = json.Marshal(Crop{ID: "c1", PredictedPrices: Forecast{{Month: "Mar 2025", Price: 1}}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"predicted_prices":{"Mar 2025":1}`)
}

func TestForecastGet(t *testing.T) {
	f := Forecast{{Month: "Mar 2025", Price: 2805}}
	p, ok := f.Get("Mar 2025")
	assert.True(t, ok)
	assert.Equal(t, 2805.0, p)

	_, ok = f.Get("Apr 2025")
	assert.False(t, ok)
}
