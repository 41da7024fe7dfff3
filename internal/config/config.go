package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpire      time.Duration
	AllowedOrigins []string
	Environment    string

	// Default category lists seeded on a user's first access.
	DefaultCategories       []string
	DefaultIncomeCategories []string
}

// Load loads configuration from environment variables
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it.")
	}

	expire := 7 * 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal("Invalid JWT_EXPIRE:", err)
		}
		expire = d
	}

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = nil
		for _, o := range strings.Split(v, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	config := &Config{
		Port:           getEnv("PORT", "3001"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDB:        os.Getenv("MONGODB_DB"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpire:      expire,
		AllowedOrigins: origins,
		Environment:    getEnv("APP_ENV", "development"),
		DefaultCategories: []string{
			"Food", "Transport", "Phone", "Shopping", "Health", "Entertainment", "Bills", "Other",
		},
		DefaultIncomeCategories: []string{
			"Salary", "Pocket Money", "Gift", "Freelance", "Investment", "Bonus", "Other",
		},
	}

	// Validate required fields
	if config.MongoURI == "" {
		log.Fatal("MONGODB_URI not set")
	}
	if config.MongoDB == "" {
		log.Fatal("MONGODB_DB not set")
	}
	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	return config
}

// IsProduction reports whether error responses should hide internal detail.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
