package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/recipevault/recipevault/db"
	"github.com/recipevault/recipevault/internal/auth"
	"github.com/recipevault/recipevault/internal/logger"
	"github.com/recipevault/recipevault/internal/router"
	"github.com/recipevault/recipevault/internal/users"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.InitJWTSecret(); err != nil {
		logger.Log.Fatal("JWT secret", zap.Error(err))
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		createSuperuser(os.Args[2:])
		return
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		logger.Log.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}

func createSuperuser(args []string) {
	if len(args) != 2 {
		logger.Log.Fatal("Usage: recipevault createsuperuser <email> <password>")
	}

	user, err := users.CreateSuperuser(db.DB, args[0], args[1])

	if err != nil {
		logger.Log.Fatal("Failed to create superuser", zap.Error(err))
	}

	logger.Log.Info("Superuser created", zap.String("email", user.Email), zap.Uint("id", user.ID))
}
