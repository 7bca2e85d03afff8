package handlers

import (
	"errors"
	"log"
	"strings"

	"agrimarket/middleware"
	"agrimarket/models"
	"agrimarket/repository"
	"agrimarket/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleListCrops lists crop listings, optionally filtered by state.
// With predictions=true every crop of the page carries its forecast.
// GET /api/v1/crops
func HandleListCrops(c *fiber.Ctx) error {
	var (
		crops []models.Crop
		err   error
	)
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		crops, err = Crops.ByState(c.Context(), state)
	} else {
		crops, err = Crops.All(c.Context())
	}
	if err != nil {
		log.Printf("Error fetching crops: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch crops"})
	}

	return respondWithCropPage(c, crops)
}

// HandleListFarmerCrops lists the crops published by one farmer.
// GET /api/v1/farmers/:farmerId/crops
func HandleListFarmerCrops(c *fiber.Ctx) error {
	farmerID := c.Params("farmerId")

	crops, err := Crops.ByFarmer(c.Context(), farmerID)
	if err != nil {
		log.Printf("Error fetching crops of farmer %s: %v", farmerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch crops"})
	}

	return respondWithCropPage(c, crops)
}

func respondWithCropPage(c *fiber.Ctx, crops []models.Crop) error {
	p := pagination(c, len(crops))
	start, end := p.Bounds()
	page := crops[start:end]

	if c.QueryBool("predictions") && len(page) > 0 {
		// comparables come from the whole marketplace, not just this page
		pool, err := Crops.All(c.Context())
		if err != nil {
			log.Printf("Error fetching crops for predictions: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute predictions"})
		}
		annotated := make([]models.Crop, len(page))
		for i, crop := range page {
			annotated[i] = Engine.Annotate(crop, pool)
		}
		page = annotated
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": models.PaginatedCropsResponse{
			Data: page,
			Pagination: models.PaginationInfo{
				TotalItems:  p.TotalItems,
				TotalPages:  p.TotalPages,
				CurrentPage: p.CurrentPage,
				PageSize:    p.PageSize,
			},
		},
	})
}

// HandleGetCrop returns a crop together with its price predictions.
// GET /api/v1/crops/:cropId
func HandleGetCrop(c *fiber.Ctx) error {
	crop, pool, err := loadCropWithPool(c, c.Params("cropId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "success", "data": Engine.Annotate(crop, pool)})
}

// HandleCreateCrop publishes a crop owned by the logged-in farmer.
// POST /api/v1/crops
func HandleCreateCrop(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return err
	}

	var req models.CreateCropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	crop := models.Crop{
		FarmerID:    claims.UserID,
		Name:        strings.TrimSpace(req.Name),
		State:       strings.TrimSpace(req.State),
		District:    strings.TrimSpace(req.District),
		Taluk:       strings.TrimSpace(req.Taluk),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
	}
	if msg := validateCrop(crop); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": msg})
	}

	if farmer, err := Users.ByID(c.Context(), claims.UserID); err == nil {
		crop.FarmerName = farmer.Name
	} else {
		log.Printf("Could not resolve farmer name for %s: %v", claims.UserID, err)
	}

	saved, err := Crops.Save(c.Context(), crop)
	if err != nil {
		log.Printf("Error saving crop for farmer %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save crop"})
	}

	log.Printf("Crop %s (%s) published by farmer %s", saved.ID, saved.Name, claims.UserID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": saved})
}

// HandleUpdateCrop changes a crop owned by the logged-in farmer.
// PUT /api/v1/crops/:cropId
func HandleUpdateCrop(c *fiber.Ctx) error {
	crop, err := loadOwnedCrop(c, c.Params("cropId"))
	if err != nil {
		return err
	}

	var req models.UpdateCropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	crop.Name = utils.StringOrDefault(req.Name, crop.Name)
	crop.State = utils.StringOrDefault(req.State, crop.State)
	crop.District = utils.StringOrDefault(req.District, crop.District)
	crop.Taluk = utils.StringOrDefault(req.Taluk, crop.Taluk)
	crop.ImageURL = utils.StringOrDefault(req.ImageURL, crop.ImageURL)
	crop.Description = utils.StringOrDefault(req.Description, crop.Description)
	if req.Price != nil {
		crop.Price = *req.Price
	}
	if msg := validateCrop(crop); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": msg})
	}

	saved, err := Crops.Save(c.Context(), crop)
	if err != nil {
		log.Printf("Error updating crop %s: %v", crop.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update crop"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": saved})
}

// HandleDeleteCrop removes a crop owned by the logged-in farmer.
// DELETE /api/v1/crops/:cropId
func HandleDeleteCrop(c *fiber.Ctx) error {
	crop, err := loadOwnedCrop(c, c.Params("cropId"))
	if err != nil {
		return err
	}

	if err := Crops.Delete(c.Context(), crop.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Error deleting crop %s: %v", crop.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete crop"})
	}

	log.Printf("Crop %s deleted", crop.ID)
	return c.JSON(fiber.Map{"status": "success", "message": "Crop deleted successfully"})
}

// --- Helper Functions ---

func validateCrop(crop models.Crop) string {
	switch {
	case crop.Name == "":
		return "Crop name is required"
	case crop.State == "" || crop.District == "":
		return "State and district are required"
	case crop.Price < 0:
		return "Price cannot be negative"
	}
	return ""
}

// loadCrop fetches a crop. Errors are *fiber.Error ready to be returned.
func loadCrop(c *fiber.Ctx, cropID string) (models.Crop, error) {
	crop, err := Crops.ByID(c.Context(), cropID)
	if errors.Is(err, repository.ErrNotFound) {
		return crop, fiber.NewError(fiber.StatusNotFound, "Crop not found")
	}
	if err != nil {
		log.Printf("Error fetching crop %s: %v", cropID, err)
		return crop, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch crop")
	}
	return crop, nil
}

// loadCropWithPool fetches a crop and every known crop to compare it with.
func loadCropWithPool(c *fiber.Ctx, cropID string) (models.Crop, []models.Crop, error) {
	crop, err := loadCrop(c, cropID)
	if err != nil {
		return crop, nil, err
	}
	pool, err := Crops.All(c.Context())
	if err != nil {
		log.Printf("Error fetching crops for predictions: %v", err)
		return crop, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to compute predictions")
	}
	return crop, pool, nil
}

func loadOwnedCrop(c *fiber.Ctx, cropID string) (models.Crop, error) {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return models.Crop{}, err
	}
	crop, err := loadCrop(c, cropID)
	if err != nil {
		return crop, err
	}
	if crop.FarmerID != claims.UserID {
		return crop, fiber.NewError(fiber.StatusForbidden, "You can only change your own crops")
	}
	return crop, nil
}
