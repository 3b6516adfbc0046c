package main

import (
	"os"

	"github.com/VERT-sh/waitress/internal/api"
	"github.com/VERT-sh/waitress/internal/docker"
	"github.com/VERT-sh/waitress/internal/middleware"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/internal/service"
	"github.com/VERT-sh/waitress/internal/version"
	"github.com/VERT-sh/waitress/pkg/config"
	"github.com/VERT-sh/waitress/pkg/logger"
)

func main() {
	cfg := config.Load()

	logLevel := parseLogLevel(cfg.LogLevel)
	appLogger := logger.NewLogger(logLevel, os.Stdout, cfg.LogJSON)
	logger.SetDefault(appLogger)

	logger.Info("starting waitress", map[string]interface{}{"port": cfg.Port})

	if err := repository.InitDB(cfg); err != nil {
		logger.Fatal("failed to initialize database", err, nil)
	}

	userRepo := repository.NewUserRepository(repository.GetDB())
	serverRepo := repository.NewServerRepository(repository.GetDB())

	authService := service.NewAuthService(userRepo, cfg)
	middleware.SetAuthService(authService)

	provisioner := docker.NewProvisioner(cfg.ServersBasePath)
	deleter := docker.NewDeleter(serverRepo)
	resolver := version.NewResolver()
	serverService := service.NewServerService(serverRepo, resolver, provisioner, deleter)

	restorer := docker.NewRestorer(serverRepo, provisioner)
	restorer.RestoreAll()

	authHandler := api.NewAuthHandler(authService)
	serverHandler := api.NewServerHandler(serverRepo, serverService)
	consoleHandler := api.NewConsoleHandler(serverRepo, authService)

	router := api.SetupRouter(authHandler, serverHandler, consoleHandler, serverRepo, cfg)

	logger.Info("listening", map[string]interface{}{"addr": ":" + cfg.Port})
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", err, nil)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.DEBUG
	case "warn":
		return logger.WARN
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}
