package middleware

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalToken  = "token"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

// AuthMiddleware rejects requests without a valid token.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrAuthenticationRequired)
		}
		if err := authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through. A token that is
// sent but invalid is still rejected.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		if err := authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func authenticate(c *fiber.Ctx, jwtService jwt.JWTService, token string) error {
	userID, role, err := jwtService.GetUserIDByToken(c.Context(), token)
	if err != nil {
		return err
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalRole, role)
	c.Locals(LocalToken, token)
	return nil
}

// extractToken accepts both "Token <t>" and "Bearer <t>".
func extractToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(token)
	default:
		return ""
	}
}

// GetIdentity builds the caller identity from the locals set by the auth
// middlewares. Requests without them are anonymous.
func GetIdentity(c *fiber.Ctx) domain.Identity {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return domain.Anonymous()
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.Anonymous()
	}
	role, _ := c.Locals(LocalRole).(string)
	return domain.Identity{UserID: id, Role: role, Authenticated: true}
}

func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}
