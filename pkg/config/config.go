package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting the control plane needs to
// boot: database connection, token signing, and the ambient logging/server
// knobs.
type Config struct {
	// Server
	Port string

	// Logging
	LogLevel string
	LogJSON  bool

	// Database
	DatabaseURL string

	// Authentication
	JWTSecret       string
	SignupsEnabled  bool

	// Minecraft
	ServersBasePath string // working directory whose "volumes/" subdirectory holds server data
}

var AppConfig *Config

// Load loads configuration from the environment (and an optional .env file).
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnv("PORT", "9090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogJSON:         getEnvBool("LOG_JSON", false),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SignupsEnabled:  getEnvBool("SIGNUPS_ENABLED", true),
		ServersBasePath: getEnv("SERVERS_BASE_PATH", "."),
	}

	AppConfig = config
	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("Invalid boolean for %s, using default: %v", key, defaultValue)
			return defaultValue
		}
		return boolVal
	}
	return defaultValue
}
