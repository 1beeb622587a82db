package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredient(c *fiber.Ctx) error
		GetTags(c *fiber.Ctx) error
		GetTag(c *fiber.Ctx) error
	}

	catalogHandler struct {
		ingredientService ingredient.IngredientService
		tagService        tag.TagService
	}
)

func NewCatalogHandler(ingredientService ingredient.IngredientService, tagService tag.TagService) CatalogHandler {
	return &catalogHandler{
		ingredientService: ingredientService,
		tagService:        tagService,
	}
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredients(c.Context(), c.Query("name"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) GetIngredient(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredientByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredient)
}

func (h *catalogHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.tagService.GetTags(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetTags, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetTag(c *fiber.Ctx) error {
	res, err := h.tagService.GetTagByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetTag, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTag)
}
