package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/recipevault/recipevault/internal/handlers"
	"github.com/recipevault/recipevault/internal/middleware"
	"github.com/recipevault/recipevault/internal/types"
)

// ResourceHandler is the capability set every entity handler exposes.
type ResourceHandler interface {
	List(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		recipeHandler := handlers.RecipeHandler{}

		recipes := api.Group("/recipes", middleware.AuthMiddleware())
		{
			recipes.GET("", recipeHandler.List)
			recipes.POST("", recipeHandler.Create)
			recipes.GET("/:id", recipeHandler.Retrieve)
			recipes.PUT("/:id", recipeHandler.Update)
			recipes.PATCH("/:id", recipeHandler.Update)
			recipes.DELETE("/:id", recipeHandler.Delete)
		}

		registerResource(api, "/tags", handlers.NewTagHandler())
		registerResource(api, "/ingredients", handlers.NewIngredientHandler())
	}

	return r
}

func registerResource(api *gin.RouterGroup, path string, handler ResourceHandler) {
	group := api.Group(path, middleware.AuthMiddleware())

	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.PATCH("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
