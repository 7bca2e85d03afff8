package handlers

import (
	"agrimarket/models"
	"agrimarket/prediction"

	"github.com/gofiber/fiber/v2"
)

// HandleGetCropForecast returns the month by month price forecast of a crop
// with the variation against its current price.
// GET /api/v1/crops/:cropId/forecast
func HandleGetCropForecast(c *fiber.Ctx) error {
	crop, pool, err := loadCropWithPool(c, c.Params("cropId"))
	if err != nil {
		return err
	}

	now := Engine.Now()
	return c.JSON(fiber.Map{"status": "success", "data": models.ForecastResponse{
		CropID:       crop.ID,
		CropName:     crop.Name,
		CurrentPrice: crop.Price,
		GeneratedAt:  now,
		Rows:         prediction.Rows(crop.Price, Engine.ForecastAt(now, crop, pool)),
	}})
}
