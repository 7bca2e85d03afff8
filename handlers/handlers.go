// Package handlers implements the HTTP API of the marketplace.
package handlers

import (
	"strconv"

	"agrimarket/prediction"
	"agrimarket/repository"
	"agrimarket/storage"
	"agrimarket/utils"

	"github.com/gofiber/fiber/v2"
)

// Collaborators used by the handlers. main wires them before serving; Images
// and Insights stay nil when their backing service is not configured.
var (
	Crops    repository.CropStore
	Users    repository.UserStore
	Images   storage.ImageStore
	Insights InsightGenerator
	Engine   = prediction.New()
)

// pagination reads the page and pageSize query parameters.
func pagination(c *fiber.Ctx, totalItems int) *utils.Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	if pageSize > 100 {
		pageSize = 100
	}
	return utils.CreatePagination(totalItems, page, pageSize)
}
