package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateAvatar(c *fiber.Ctx) error
		DeleteAvatar(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

// bind parses the body into req and runs the struct validation.
func bind[T any](c *fiber.Ctx, v *validator.Validate, req *T) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, domain.MessageFailedBodyRequest)
	}
	if err := v.Struct(req); err != nil {
		return utils.TranslateValidationError(err)
	}
	return nil
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRegister, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	if err := h.userService.Logout(c.Context(), middleware.GetToken(c)); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedLogout, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := utils.GetPagination(c)

	res, err := h.userService.GetUsers(c.Context(), middleware.GetIdentity(c), c.Query("search"), page, limit)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	res, err := h.userService.GetUserByID(c.Context(), middleware.GetIdentity(c), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.Context(), middleware.GetIdentity(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) UpdateAvatar(c *fiber.Ctx) error {
	var req domain.AvatarRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateAvatar, err)
	}

	res, err := h.userService.UpdateAvatar(c.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateAvatar, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateAvatar)
}

func (h *userHandler) DeleteAvatar(c *fiber.Ctx) error {
	if err := h.userService.DeleteAvatar(c.Context(), middleware.GetIdentity(c)); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteAvatar, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	var req domain.SetPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSetPassword, err)
	}

	if err := h.userService.SetPassword(c.Context(), middleware.GetIdentity(c), req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSetPassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	var req domain.ForgotPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedForgotPassword, err)
	}

	if err := h.userService.ForgotPassword(c.Context(), req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedForgotPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	var req domain.ResetPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedResetPassword, err)
	}

	if err := h.userService.ResetPassword(c.Context(), req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedResetPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}
