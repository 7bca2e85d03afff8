package handlers

import (
	"log"

	"agrimarket/storage"

	"github.com/gofiber/fiber/v2"
)

// HandleUploadCropImage stores the multipart "image" file and returns its URL,
// to be used as the image_url of a crop.
// POST /api/v1/crops/images
func HandleUploadCropImage(c *fiber.Ctx) error {
	if Images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "Image uploads are not configured"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing image file"})
	}
	if file.Size > storage.MaxImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"status": "error", "message": "Image is larger than 5 MB"})
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.IsImage(contentType) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"status": "error", "message": "Only image files are accepted"})
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("Error opening uploaded file %s: %v", file.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Could not read image"})
	}
	defer f.Close()

	url, err := Images.Upload(c.Context(), storage.ImageKey(file.Filename), contentType, f)
	if err != nil {
		log.Printf("Error uploading image %s: %v", file.Filename, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": "error", "message": "Failed to upload image"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"url": url}})
}
