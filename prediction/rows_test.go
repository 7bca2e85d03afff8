package prediction

import (
	"testing"

	"agrimarket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows(t *testing.T) {
	forecast := models.Forecast{
		{Month: "May 2025", Price: 2805.0000000000005},
		{Month: "Jun 2025", Price: 2417.123},
		{Month: "Jul 2025", Price: 0},
	}

	rows := Rows(2500, forecast)

	require.Len(t, rows, 3)
	assert.Equal(t, models.ForecastRow{Month: "May 2025", PredictedPrice: 2805, VariationPercent: 12.2}, rows[0])
	assert.Equal(t, "Jun 2025", rows[1].Month)
	assert.Equal(t, 2417.12, rows[1].PredictedPrice)
	assert.Equal(t, -3.32, rows[1].VariationPercent)
	assert.Equal(t, -100.0, rows[2].VariationPercent)
}

func TestRowsZeroCurrentPrice(t *testing.T) {
	rows := Rows(0, models.Forecast{{Month: "Jan 2026", Price: 50}})
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].VariationPercent)
	assert.Empty(t, Rows(10, nil))
}
