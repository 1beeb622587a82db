package main

import (
	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/cmd/database/seed"
	"Foodgram-Backend/internal/utils"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before starting")
	seedDir := flag.String("seed", "", "load ingredients.json and tags.json from this directory and exit")
	createAdmin := flag.String("create-admin", "", "create an admin user from email:username:password and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	ctx := context.Background()
	if *seedDir != "" {
		if err := seed.Seed(ctx, db, *seedDir); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
		return
	}
	if *createAdmin != "" {
		if err := seed.CreateAdmin(ctx, db, *createAdmin); err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Errorf("failed to shut down: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
