package api

import (
	"github.com/VERT-sh/waitress/internal/middleware"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the full HTTP surface: unauthenticated auth endpoints,
// bearer-authenticated server endpoints, and the console websocket (which
// is deliberately never added to the bearer-auth group — it authenticates
// itself via query string, per its own handshake).
func SetupRouter(
	authHandler *AuthHandler,
	serverHandler *ServerHandler,
	consoleHandler *ConsoleHandler,
	servers *repository.ServerRepository,
	cfg *config.Config,
) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) { c.Status(200) })

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
	}

	server := router.Group("/api/server")
	server.Use(middleware.AuthMiddleware())
	{
		server.POST("/create", serverHandler.Create)
		server.GET("/all", serverHandler.All)

		owned := server.Group("")
		owned.Use(middleware.OwnsServer(servers))
		{
			owned.GET("/:id", serverHandler.Get)
			owned.DELETE("/:id/delete", serverHandler.Delete)
		}
	}

	// Console websocket: intentionally its own route, outside the bearer-auth
	// group. Authenticates itself via the "auth" query parameter.
	router.GET("/api/server/:id/ws", consoleHandler.HandleConsole)

	return router
}
