package querypod

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs at startup. Values come from
// the environment, with a .env file as fallback for local development.
type Config struct {
	BaseURL      string // OpenAI-compatible endpoint of the hosted model
	APIKey       string
	ModelName    string
	TavilyAPIKey string

	Addr           string // listen address
	FrontendOrigin string // the one origin allowed by CORS
	DatabaseURL    string // optional conversation archive
}

// LoadConfig reads the environment. A missing .env file is not an error;
// real environment variables always win over file values.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:        os.Getenv("BASE_URL"),
		APIKey:         os.Getenv("API_KEY"),
		ModelName:      os.Getenv("MODEL_NAME"),
		TavilyAPIKey:   os.Getenv("TAVILY_API_KEY"),
		Addr:           getEnv("ADDR", ":8000"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

// Validate fails fast on anything the process cannot serve traffic without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is not set or empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("BASE_URL (%s) is missing an http:// or https:// scheme", c.BaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is not set or empty")
	}
	if c.ModelName == "" {
		return fmt.Errorf("MODEL_NAME is not set or empty")
	}
	if c.TavilyAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is not set or empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
