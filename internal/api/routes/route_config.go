package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	RecipeHandler       handlers.RecipeHandler
	CatalogHandler      handlers.CatalogHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Catalog()
	c.Recipe()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	{
		user.Post("/", c.UserHandler.Register)
		user.Get("/", optional, c.UserHandler.GetUsers)
		user.Get("/me", required, c.UserHandler.Me)
		user.Put("/me/avatar", required, c.UserHandler.UpdateAvatar)
		user.Delete("/me/avatar", required, c.UserHandler.DeleteAvatar)
		user.Post("/set_password", required, c.UserHandler.SetPassword)
		user.Post("/forgot_password", c.UserHandler.ForgotPassword)
		user.Post("/reset_password", c.UserHandler.ResetPassword)
		user.Get("/subscriptions", required, c.SubscriptionHandler.GetSubscriptions)
		user.Post("/:id/subscribe", required, c.SubscriptionHandler.Subscribe)
		user.Delete("/:id/subscribe", required, c.SubscriptionHandler.Unsubscribe)
		user.Get("/:id", optional, c.UserHandler.GetUser)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	{
		tags.Get("/", c.CatalogHandler.GetTags)
		tags.Get("/:id", c.CatalogHandler.GetTag)
	}

	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("/", c.CatalogHandler.GetIngredients)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredient)
	}
}

// Recipe routes accept anonymous callers; the services decide which
// operations need a user.
func (c *Config) Recipe() {
	recipes := c.App.Group("/api/recipes", c.Middleware.OptionalAuthMiddleware(c.JWTService))
	{
		recipes.Get("/download_shopping_cart", c.RecipeHandler.DownloadShoppingCart)
		recipes.Get("/", c.RecipeHandler.GetRecipes)
		recipes.Post("/", c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
		recipes.Get("/:id/get-link", c.RecipeHandler.GetShortLink)
		recipes.Post("/:id/favorite", c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", c.RecipeHandler.RemoveFromShoppingCart)
	}
}
