package utils

import (
	"Foodgram-Backend/domain"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// GetPagination reads the page and limit query params. Bad values fall back
// to the defaults instead of failing the request.
func GetPagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return page, limit
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}
