package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/relation"
	"Foodgram-Backend/pkg/shoppinglist"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetShortLink(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService       recipe.RecipeService
		relationService     relation.RelationService
		shoppingListService shoppinglist.ShoppingListService
		validator           *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	relationService relation.RelationService,
	shoppingListService shoppinglist.ShoppingListService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:       recipeService,
		relationService:     relationService,
		shoppingListService: shoppingListService,
		validator:           validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := utils.GetPagination(c)

	filter := domain.RecipeFilter{
		AuthorID:         c.Query("author"),
		IsFavorited:      c.Query("is_favorited") == "1",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1",
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(slug))
	}

	res, err := h.recipeService.GetRecipes(c.Context(), middleware.GetIdentity(c), filter, page, limit)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), middleware.GetIdentity(c), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if !identity.Authenticated {
		return presenters.FailResponse(c, domain.MessageFailedCreateRecipe, domain.ErrAuthenticationRequired)
	}

	req, err := h.parseRecipeRequest(c)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), identity, req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if !identity.Authenticated {
		return presenters.FailResponse(c, domain.MessageFailedUpdateRecipe, domain.ErrAuthenticationRequired)
	}

	req, err := h.parseRecipeRequest(c)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), identity, c.Params("id"), req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) parseRecipeRequest(c *fiber.Ctx) (domain.RecipeRequest, error) {
	var req domain.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, domain.MessageFailedBodyRequest)
	}
	// empty lists are reported together as one non field error
	if len(req.Ingredients) == 0 || len(req.Tags) == 0 {
		return req, domain.ErrNotEnoughRecipeData
	}
	if err := h.validator.Struct(req); err != nil {
		return req, utils.TranslateValidationError(err)
	}
	return req, nil
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Context(), middleware.GetIdentity(c), c.Params("id")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) GetShortLink(c *fiber.Ctx) error {
	res, err := h.recipeService.GetShortLink(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetShortLink, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShortLink)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addToList(c, entities.RelationFavorite, domain.MessageSuccessAddToFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeFromList(c, entities.RelationFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.addToList(c, entities.RelationShoppingCart, domain.MessageSuccessAddToCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.removeFromList(c, entities.RelationShoppingCart)
}

func (h *recipeHandler) addToList(c *fiber.Ctx, kind entities.RelationKind, message string) error {
	res, err := h.relationService.AddRecipe(c.Context(), middleware.GetIdentity(c), kind, c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddToList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, message)
}

func (h *recipeHandler) removeFromList(c *fiber.Ctx, kind entities.RelationKind) error {
	if err := h.relationService.RemoveRecipe(c.Context(), middleware.GetIdentity(c), kind, c.Params("id")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRemoveFromList, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	body, err := h.shoppingListService.DownloadShoppingList(c.Context(), middleware.GetIdentity(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", domain.ShoppingListFileName))
	return c.Status(fiber.StatusOK).Send(body)
}
