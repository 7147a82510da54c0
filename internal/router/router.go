// Package router assembles the Gin engine that serves the Todoey API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "todoey/internal/docs" // Import swagger docs
	"todoey/internal/handlers"
	"todoey/internal/middleware"
	"todoey/internal/services"
)

// Options controls the optional parts of the engine.
type Options struct {
	// APIKey, when non-empty, protects /api/v1.
	APIKey string
	// Swagger mounts the swagger UI at /swagger.
	Swagger bool
	// AccessLog enables per-request zap logging.
	AccessLog bool
}

// New builds the engine with all routes bound to store.
func New(store *services.Store, opts Options) *gin.Engine {
	categoryHandler := handlers.NewCategoryHandler(store.CategoryServicer)
	itemHandler := handlers.NewItemHandler(store.ItemServicer)
	changeHandler := handlers.NewChangeHandler(store.ChangeServicer)

	router := gin.New()
	router.Use(middleware.Recovery())
	if opts.AccessLog {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(cors())
	router.NoRoute(middleware.NoRoute())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(opts.APIKey))

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id/colour", categoryHandler.EnsureColour)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/items", itemHandler.CreateItem)
	categories.GET("/:id/items", itemHandler.ListItems)

	items := v1.Group("/items")
	items.GET("/:id", itemHandler.GetItem)
	items.POST("/:id/toggle", itemHandler.ToggleDone)
	items.DELETE("/:id", itemHandler.DeleteItem)

	v1.GET("/changes", changeHandler.ListChanges)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match, "+middleware.APIKeyHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "ETag, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
