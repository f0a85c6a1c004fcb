package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all environment-provided settings for the application.
type Config struct {
	MongoURI      string
	DBName        string
	JWTSecret     string
	Port          string
	LogLevel      string
	SeedRoutes    bool    // registers the /add-pizza seeding route when true
	PostmarkToken string  // empty disables outgoing email
	EmailSender   string
	AuthRPS       float64 // rate limit for /login and /signup
	AuthBurst     int
	TrustProxy    bool // honor X-Forwarded-For/X-Real-IP for rate limiting
}

// Load reads configuration from a .env file (if present) and the
// process environment, applying defaults where values are missing.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "pizzapal"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		Port:          getEnv("PORT", "3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SeedRoutes:    getEnvBool("SEED_ROUTES", false),
		PostmarkToken: getEnv("POSTMARK_API_TOKEN", ""),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
		AuthRPS:       getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		AuthBurst:     getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		TrustProxy:    getEnvBool("TRUST_PROXY", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
