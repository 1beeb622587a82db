package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/subscription"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// recipesLimit reads ?recipes_limit=. Anything but a positive integer means
// no limit.
func recipesLimit(c *fiber.Ctx) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	res, err := h.subscriptionService.Subscribe(c.Context(), middleware.GetIdentity(c), c.Params("id"), recipesLimit(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSubscribe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	if err := h.subscriptionService.Unsubscribe(c.Context(), middleware.GetIdentity(c), c.Params("id")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUnsubscribe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *subscriptionHandler) GetSubscriptions(c *fiber.Ctx) error {
	page, limit := utils.GetPagination(c)

	res, err := h.subscriptionService.GetSubscriptions(c.Context(), middleware.GetIdentity(c), page, limit, recipesLimit(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetSubscriptions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
