package config

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/api/routes"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/jwt"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/relation"
	"Foodgram-Backend/pkg/shoppinglist"
	"Foodgram-Backend/pkg/subscription"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const bodyLimit = 10 * 1024 * 1024

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		JSONEncoder:       json.Marshal,
		JSONDecoder:       json.Unmarshal,
		// base64 images travel inside JSON bodies
		BodyLimit: bodyLimit,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	tokenRepository := jwt.NewTokenRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	tagRepository := tag.NewTagRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	relationRepository := relation.NewRelationRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)
	shoppingListRepository := shoppinglist.NewShoppingListRepository(db)

	// Service
	jwtService := jwt.NewJWTService(tokenRepository)
	userService := user.NewUserService(userRepository, jwtService, s3, subscriptionRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	tagService := tag.NewTagService(tagRepository)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		ingredientRepository,
		tagRepository,
		relationRepository,
		subscriptionRepository,
		s3,
	)
	relationService := relation.NewRelationService(relationRepository, recipeRepository)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository, userRepository, recipeRepository)
	shoppingListService := shoppinglist.NewShoppingListService(shoppingListRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	catalogHandler := handlers.NewCatalogHandler(ingredientService, tagService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, relationService, shoppingListService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		RecipeHandler:       recipeHandler,
		CatalogHandler:      catalogHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
