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

// HandleGetMyProfile returns the profile of the logged-in user.
// GET /api/v1/users/me
func HandleGetMyProfile(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return err
	}

	user, err := Users.ByID(c.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
	}
	if err != nil {
		log.Printf("Error fetching profile for user %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": user})
}

// HandleUpdateMyProfile updates the contact details of the logged-in user.
// PUT /api/v1/users/me
func HandleUpdateMyProfile(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid JSON"})
	}

	user, err := Users.ByID(c.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
	}
	if err != nil {
		log.Printf("Error fetching profile for user %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch profile"})
	}

	user.Name = utils.StringOrDefault(req.Name, user.Name)
	user.State = utils.StringOrDefault(req.State, user.State)
	user.District = utils.StringOrDefault(req.District, user.District)
	user.Taluk = utils.StringOrDefault(req.Taluk, user.Taluk)
	user.PhoneNumber = utils.StringOrDefault(req.PhoneNumber, user.PhoneNumber)
	if user.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Name cannot be empty"})
	}

	updated, err := Users.Update(c.Context(), user)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": updated})
}

// HandleListUsers lists the community. The optional q parameter matches the
// name, taluk, district or state, ignoring case; role keeps one kind of user.
// GET /api/v1/users
func HandleListUsers(c *fiber.Ctx) error {
	users, err := Users.All(c.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch users"})
	}

	query := strings.TrimSpace(c.Query("q"))
	role := strings.ToLower(c.Query("role"))

	filtered := []models.ContactCard{}
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if query != "" && !utils.ContainsFold(query, u.Name, u.Taluk, u.District, u.State) {
			continue
		}
		filtered = append(filtered, models.NewContactCard(u))
	}

	p := pagination(c, len(filtered))
	start, end := p.Bounds()

	return c.JSON(fiber.Map{
		"status": "success",
		"data": models.PaginatedUsersResponse{
			Data: filtered[start:end],
			Pagination: models.PaginationInfo{
				TotalItems:  p.TotalItems,
				TotalPages:  p.TotalPages,
				CurrentPage: p.CurrentPage,
				PageSize:    p.PageSize,
			},
		},
	})
}

// HandleGetUserContact returns how to reach a user, typically the farmer
// behind a crop listing.
// GET /api/v1/users/:userId
func HandleGetUserContact(c *fiber.Ctx) error {
	userID := c.Params("userId")

	user, err := Users.ByID(c.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
	}
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.NewContactCard(user)})
}
